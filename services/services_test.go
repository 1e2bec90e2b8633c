package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/config"
	"github.com/petpalid/petcare-app/models"
)

// fakeClock dengan waktu yang bisa digeser manual, untuk tes expiry.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	// Satu koneksi saja supaya :memory: konsisten antar goroutine
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.CatalogItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.PaymentHistory{},
		&models.CoinEntry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func testAppConfig() config.AppConfig {
	return config.AppConfig{
		BookingFee:    50000,
		RewardPercent: 10,
		PaymentWindow: 24 * time.Hour,
		SweepInterval: time.Minute,
	}
}

// seedCustomer membuat user customer untuk fixture.
func seedCustomer(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test Customer",
		Email:    email,
		Password: "irrelevant",
		Role:     models.RoleCustomer,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return user
}

func seedCatalogItem(t *testing.T, db *gorm.DB, kind string, price int64) models.CatalogItem {
	t.Helper()
	item := models.CatalogItem{
		ServiceKind: kind,
		Name:        "Test Item",
		UnitPrice:   price,
		Active:      true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed catalog item: %v", err)
	}
	return item
}

// checkoutFixture membuat satu order clinic_booking lengkap dengan payment
// awaiting_payment lewat jalur checkout beneran.
func checkoutFixture(t *testing.T, db *gorm.DB, clock Clock) (*models.Order, models.User) {
	t.Helper()

	customer := seedCustomer(t, db, "customer@example.com")
	item := seedCatalogItem(t, db, models.KindClinicBooking, 300000)

	checkout := NewCheckoutService(db, NewCatalogService(db), testAppConfig(), clock)
	order, err := checkout.Checkout(CheckoutInput{
		ServiceKind: models.KindClinicBooking,
		CustomerID:  customer.ID,
		Items:       []LineItemInput{{CatalogItemID: item.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("checkout fixture failed: %v", err)
	}
	return order, customer
}
