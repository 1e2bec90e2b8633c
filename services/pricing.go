package services

import "github.com/petpalid/petcare-app/models"

// Kalkulasi harga order. Pure function tanpa side effect; semua nominal
// dalam Rupiah utuh (int64) supaya tidak ada drift floating point.

// CalculateTotal menjumlahkan subtotal semua item plus booking fee.
func CalculateTotal(items []models.OrderItem, bookingFee int64) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total + bookingFee
}

// RewardFor menghitung reward koin: floor(total * percent / 100).
func RewardFor(total, percent int64) int64 {
	if total <= 0 || percent <= 0 {
		return 0
	}
	return total * percent / 100
}
