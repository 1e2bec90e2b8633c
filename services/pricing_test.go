package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petpalid/petcare-app/models"
)

func TestCalculateTotal(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 300000, Quantity: 1},
	}

	total := CalculateTotal(items, 50000)
	assert.Equal(t, int64(350000), total)
}

func TestCalculateTotalWithQuantity(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 25000, Quantity: 3},
		{UnitPrice: 120000, Quantity: 1},
	}

	total := CalculateTotal(items, 10000)
	assert.Equal(t, int64(25000*3+120000+10000), total)
}

func TestRewardFor(t *testing.T) {
	assert.Equal(t, int64(35000), RewardFor(350000, 10))
	// Floor, bukan pembulatan
	assert.Equal(t, int64(3), RewardFor(35, 10))
	assert.Equal(t, int64(0), RewardFor(9, 10))
	// Input aneh tidak menghasilkan reward negatif
	assert.Equal(t, int64(0), RewardFor(-100, 10))
	assert.Equal(t, int64(0), RewardFor(100, 0))
}

// Total harus selalu persis sum(item) + fee, tanpa drift, untuk kombinasi acak.
func TestTotalInvariantRandomItems(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(10) + 1
		items := make([]models.OrderItem, 0, n)
		var expected int64
		for j := 0; j < n; j++ {
			price := int64(rng.Intn(1_000_000) + 1)
			qty := rng.Intn(5) + 1
			items = append(items, models.OrderItem{UnitPrice: price, Quantity: qty})
			expected += price * int64(qty)
		}
		fee := int64(rng.Intn(100_000))

		assert.Equal(t, expected+fee, CalculateTotal(items, fee))
	}
}
