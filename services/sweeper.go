package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/events"
	"github.com/petpalid/petcare-app/models"
)

// ExpirationSweeper memaksa payment yang lewat deadline ke status expired.
// Sweeper memakai primitive Transition yang sama dengan jalur API, jadi
// tidak ada logika transisi yang diduplikasi; kalau admin menang race,
// sweep-nya sekadar kalah dan lanjut.
type ExpirationSweeper struct {
	db        *gorm.DB
	lifecycle *PaymentLifecycle
	clock     Clock
	interval  time.Duration
	done      chan struct{}
}

func NewExpirationSweeper(db *gorm.DB, lifecycle *PaymentLifecycle, clock Clock, interval time.Duration) *ExpirationSweeper {
	return &ExpirationSweeper{
		db:        db,
		lifecycle: lifecycle,
		clock:     clock,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start menjalankan loop sweep di goroutine sendiri.
func (es *ExpirationSweeper) Start() {
	go es.run()
	log.Printf("Expiration sweeper started (interval %s)", es.interval)
}

// Stop menghentikan loop sweep.
func (es *ExpirationSweeper) Stop() {
	close(es.done)
}

func (es *ExpirationSweeper) run() {
	ticker := time.NewTicker(es.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := es.Sweep(es.clock.Now()); err != nil {
				log.Printf("Error running expiration sweep: %v", err)
			}
		case <-es.done:
			return
		}
	}
}

// Sweep mengekspirasi semua payment non-terminal yang deadline-nya sudah
// lewat pada waktu `now`. Gagal di satu payment tidak menghentikan sisanya.
// Mengembalikan jumlah payment yang berhasil ditransisikan.
func (es *ExpirationSweeper) Sweep(now time.Time) (int, error) {
	var ids []uint
	err := es.db.Model(&models.Payment{}).
		Where("status IN ? AND expires_at < ?",
			[]string{models.PaymentStatusAwaiting, models.PaymentStatusUnderReview}, now).
		Pluck("id", &ids).Error
	if err != nil {
		// Storage tidak bisa diquery: batalkan cycle ini, coba lagi di
		// interval berikutnya.
		return 0, err
	}

	count := 0
	for _, id := range ids {
		payment, err := es.lifecycle.Transition(id, EventExpire, SystemActor())
		if err != nil {
			// Kalah race dengan admin/customer bukan masalah; payment
			// sudah pindah status dan edge expire memang tidak ada lagi.
			if errors.Is(err, ErrConflict) || errors.Is(err, ErrIllegalTransition) {
				continue
			}
			log.Printf("Error expiring payment %d: %v", id, err)
			continue
		}
		events.BroadcastPaymentExpired(*payment)
		count++
	}

	if count > 0 {
		log.Printf("Expiration sweep: %d payment(s) expired", count)
	}
	return count, nil
}
