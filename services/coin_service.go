package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/models"
)

// CoinService adalah ledger koin loyalty.
type CoinService struct {
	db *gorm.DB
}

func NewCoinService(db *gorm.DB) *CoinService {
	return &CoinService{db: db}
}

// CreditForPayment mencatat kredit reward untuk satu payment di dalam
// transaksi tx milik pemanggil. Unique index di payment_id menolak kredit
// kedua untuk payment yang sama.
func (cs *CoinService) CreditForPayment(tx *gorm.DB, customerID uint, amount int64, paymentID uint) error {
	if amount <= 0 {
		return nil
	}

	entry := models.CoinEntry{
		CustomerID: customerID,
		Amount:     amount,
		PaymentID:  &paymentID,
		Note:       fmt.Sprintf("reward payment #%d", paymentID),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to credit coins for payment %d: %w", paymentID, err)
	}
	return nil
}

// Balance menjumlahkan seluruh mutasi koin seorang customer.
func (cs *CoinService) Balance(customerID uint) (int64, error) {
	var balance int64
	err := cs.db.Model(&models.CoinEntry{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Entries mengembalikan riwayat mutasi koin, terbaru dulu.
func (cs *CoinService) Entries(customerID uint) ([]models.CoinEntry, error) {
	var entries []models.CoinEntry
	err := cs.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
