package models

import "time"

// Status pembayaran. Completed, Expired, dan Cancelled bersifat terminal:
// tidak ada transisi keluar dari ketiganya.
const (
	PaymentStatusAwaiting    = "awaiting_payment"
	PaymentStatusUnderReview = "under_review"
	PaymentStatusCompleted   = "completed"
	PaymentStatusExpired     = "expired"
	PaymentStatusCancelled   = "cancelled"
)

// Payment melacak settlement satu Order (1:1). Dibuat sinkron bersama order
// di dalam transaksi checkout, bukan lazy saat upload bukti.
type Payment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OrderID uint   `gorm:"not null;uniqueIndex" json:"order_id"`
	Order   Order  `gorm:"foreignKey:OrderID;references:ID" json:"-"`
	Status  string `gorm:"type:varchar(20);not null;default:'awaiting_payment';index" json:"status"`
	// Referensi file bukti transfer; diisi saat transisi ke under_review.
	ProofOfPayment *string `gorm:"type:varchar(255)" json:"proof_of_payment,omitempty"`
	// Reward koin dihitung sekali saat checkout, dikreditkan hanya pada
	// transisi ke completed.
	RewardAmount int64     `gorm:"not null" json:"reward_amount"`
	VerifiedBy   *uint     `json:"verified_by,omitempty"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// Terminal melaporkan apakah status sudah final.
func (p Payment) Terminal() bool {
	switch p.Status {
	case PaymentStatusCompleted, PaymentStatusExpired, PaymentStatusCancelled:
		return true
	}
	return false
}
