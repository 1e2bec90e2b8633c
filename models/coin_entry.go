package models

import "time"

// CoinEntry adalah satu mutasi di ledger koin loyalty. PaymentID unik
// menjadikan kredit reward at-most-once di level database, di atas guard
// status di state machine.
type CoinEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   User      `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
	Amount     int64     `gorm:"not null" json:"amount"`
	PaymentID  *uint     `gorm:"uniqueIndex" json:"payment_id,omitempty"`
	Payment    *Payment  `gorm:"foreignKey:PaymentID;references:ID" json:"-"`
	Note       string    `gorm:"type:varchar(255)" json:"note"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
