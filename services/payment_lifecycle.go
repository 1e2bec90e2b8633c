package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/models"
)

// Event yang bisa menggerakkan state machine pembayaran.
type Event string

const (
	EventSubmitProof Event = "submit_proof"
	EventConfirm     Event = "confirm"
	EventReject      Event = "reject"
	EventExpire      Event = "expire"
)

// Actor pemicu transisi, untuk audit log.
type Actor struct {
	Kind   string // models.ActorCustomer / ActorAdmin / ActorSystem
	UserID *uint
}

// SystemActor dipakai oleh sweeper.
func SystemActor() Actor {
	return Actor{Kind: models.ActorSystem}
}

// transitionTable memetakan (status sekarang, event) -> status berikutnya.
// Status terminal tidak punya entri: tidak ada edge keluar dari completed,
// expired, maupun cancelled.
var transitionTable = map[string]map[Event]string{
	models.PaymentStatusAwaiting: {
		EventSubmitProof: models.PaymentStatusUnderReview,
		EventExpire:      models.PaymentStatusExpired,
	},
	models.PaymentStatusUnderReview: {
		// Upload ulang bukti selagi direview diperbolehkan
		EventSubmitProof: models.PaymentStatusUnderReview,
		EventConfirm:     models.PaymentStatusCompleted,
		EventReject:      models.PaymentStatusCancelled,
		EventExpire:      models.PaymentStatusExpired,
	},
}

// PaymentLifecycle memiliki lifecycle status seluruh pembayaran. Semua jalur
// (upload bukti customer, keputusan admin, sweep otomatis) lewat primitive
// transisi yang sama, jadi legalitas edge dicek di satu tempat saja.
type PaymentLifecycle struct {
	db    *gorm.DB
	coins *CoinService
	clock Clock
}

func NewPaymentLifecycle(db *gorm.DB, coins *CoinService, clock Clock) *PaymentLifecycle {
	return &PaymentLifecycle{db: db, coins: coins, clock: clock}
}

// GetPayment mengambil satu payment beserta ordernya.
func (pl *PaymentLifecycle) GetPayment(paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := pl.db.Preload("Order").First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
		}
		return nil, err
	}
	return &payment, nil
}

// SubmitProof menyimpan referensi bukti transfer dan memindahkan payment ke
// under_review. Boleh dari awaiting_payment maupun under_review (upload
// ulang), selama deadline belum lewat.
func (pl *PaymentLifecycle) SubmitProof(paymentID uint, fileRef string, actor Actor) (*models.Payment, error) {
	if fileRef == "" {
		return nil, fmt.Errorf("proof file ref required: %w", ErrInvalidInput)
	}

	tx := pl.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var payment models.Payment
	if err := tx.Preload("Order").First(&payment, paymentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
		}
		return nil, err
	}

	next, ok := transitionTable[payment.Status][EventSubmitProof]
	if !ok {
		tx.Rollback()
		return nil, fmt.Errorf("submit proof on %s payment: %w", payment.Status, ErrIllegalTransition)
	}

	now := pl.clock.Now()
	if now.After(payment.ExpiresAt) {
		tx.Rollback()
		return nil, fmt.Errorf("payment %d deadline passed: %w", paymentID, ErrExpired)
	}

	// Guard race: update hanya jika status masih sama dengan yang dibaca.
	res := tx.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, payment.Status).
		Updates(map[string]interface{}{
			"status":           next,
			"proof_of_payment": fileRef,
			"updated_at":       now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("payment %d changed concurrently: %w", paymentID, ErrConflict)
	}

	if err := appendHistory(tx, payment.ID, next, actor, now); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit proof submission: %w", err)
	}

	payment.Status = next
	payment.ProofOfPayment = &fileRef
	payment.UpdatedAt = now
	return &payment, nil
}

// Transition menjalankan satu edge state machine untuk confirm/reject/expire.
// Mengulang confirm pada payment yang sudah completed adalah no-op (payment
// dikembalikan apa adanya) supaya retry dari admin maupun HTTP layer aman.
func (pl *PaymentLifecycle) Transition(paymentID uint, event Event, actor Actor) (*models.Payment, error) {
	tx := pl.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var payment models.Payment
	if err := tx.Preload("Order").First(&payment, paymentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
		}
		return nil, err
	}

	// Idempotent completion: confirm ulang bukan error.
	if event == EventConfirm && payment.Status == models.PaymentStatusCompleted {
		tx.Rollback()
		return &payment, nil
	}

	next, ok := transitionTable[payment.Status][event]
	if !ok {
		tx.Rollback()
		return nil, fmt.Errorf("%s on %s payment: %w", event, payment.Status, ErrIllegalTransition)
	}

	now := pl.clock.Now()

	// Edge expire hanya legal setelah deadline lewat, siapapun pemanggilnya.
	if event == EventExpire && !now.After(payment.ExpiresAt) {
		tx.Rollback()
		return nil, fmt.Errorf("payment %d deadline not passed yet: %w", paymentID, ErrIllegalTransition)
	}

	updates := map[string]interface{}{
		"status":     next,
		"updated_at": now,
	}
	if actor.Kind == models.ActorAdmin && actor.UserID != nil {
		updates["verified_by"] = *actor.UserID
	}

	res := tx.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, payment.Status).
		Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Kalah race: transisi lain sudah commit duluan.
		tx.Rollback()
		return nil, fmt.Errorf("payment %d changed concurrently: %w", paymentID, ErrConflict)
	}

	// Reward dikredit hanya pada edge masuk ke completed. Guard pakai status
	// SEBELUM transisi (bukan status sekarang) supaya race admin vs sweep
	// tidak bisa double-credit. Gagal kredit koin tidak membatalkan
	// transisi: completion-nya tetap fakta utama, koin best-effort.
	if next == models.PaymentStatusCompleted && payment.Status != models.PaymentStatusCompleted {
		err := pl.coins.CreditForPayment(tx, payment.Order.CustomerID, payment.RewardAmount, payment.ID)
		if err != nil {
			log.Printf("Warning: coin credit failed for payment %d: %v", payment.ID, err)
		}
	}

	if err := appendHistory(tx, payment.ID, next, actor, now); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	payment.Status = next
	payment.UpdatedAt = now
	if actor.Kind == models.ActorAdmin {
		payment.VerifiedBy = actor.UserID
	}
	return &payment, nil
}

// Confirm -> admin menyetujui bukti transfer, payment selesai.
func (pl *PaymentLifecycle) Confirm(paymentID uint, adminID uint) (*models.Payment, error) {
	return pl.Transition(paymentID, EventConfirm, Actor{Kind: models.ActorAdmin, UserID: &adminID})
}

// Reject -> admin menolak bukti transfer, payment dibatalkan.
func (pl *PaymentLifecycle) Reject(paymentID uint, adminID uint) (*models.Payment, error) {
	return pl.Transition(paymentID, EventReject, Actor{Kind: models.ActorAdmin, UserID: &adminID})
}

// History mengembalikan seluruh audit log transisi sebuah payment.
func (pl *PaymentLifecycle) History(paymentID uint) ([]models.PaymentHistory, error) {
	var entries []models.PaymentHistory
	err := pl.db.Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func appendHistory(tx *gorm.DB, paymentID uint, status string, actor Actor, now time.Time) error {
	entry := models.PaymentHistory{
		PaymentID: paymentID,
		Status:    status,
		Actor:     actor.Kind,
		UserID:    actor.UserID,
		CreatedAt: now,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append payment history: %w", err)
	}
	return nil
}
