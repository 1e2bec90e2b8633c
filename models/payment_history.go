package models

import "time"

// Actor yang memicu sebuah transisi status.
const (
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
	ActorSystem   = "system"
)

// PaymentHistory adalah audit log append-only: satu baris per transisi
// status. Tidak pernah di-update atau dihapus.
type PaymentHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID uint      `gorm:"not null;index" json:"payment_id"`
	Payment   Payment   `gorm:"foreignKey:PaymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Status    string    `gorm:"type:varchar(20);not null" json:"status"`
	Actor     string    `gorm:"type:varchar(20);not null" json:"actor"`
	UserID    *uint     `json:"user_id,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
