package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/config"
	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/utils"
)

// LineItemInput adalah satu baris permintaan checkout dari client.
type LineItemInput struct {
	CatalogItemID uint   `json:"catalog_item_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
}

// CheckoutInput adalah permintaan checkout lengkap, sudah melewati binding
// di layer HTTP.
type CheckoutInput struct {
	ServiceKind string
	CustomerID  uint
	Items       []LineItemInput
	PetID       *uint
	AddressRef  string
}

// CheckoutService membuat order immutable bersama payment-nya dalam satu
// transaksi. Payment dibuat sinkron di sini, persis sekali; tidak ada
// "find or create" di endpoint lain.
type CheckoutService struct {
	db      *gorm.DB
	catalog *CatalogService
	cfg     config.AppConfig
	clock   Clock
}

func NewCheckoutService(db *gorm.DB, catalog *CatalogService, cfg config.AppConfig, clock Clock) *CheckoutService {
	return &CheckoutService{db: db, catalog: catalog, cfg: cfg, clock: clock}
}

// Checkout memvalidasi input per service kind, me-resolve semua item lewat
// katalog, menghitung harga, lalu menyimpan Order + OrderItems + Payment
// (awaiting_payment, deadline now+window) secara atomik.
func (cs *CheckoutService) Checkout(in CheckoutInput) (*models.Order, error) {
	if err := cs.validate(in); err != nil {
		return nil, err
	}

	if in.PetID != nil {
		var pet models.Pet
		if err := cs.db.First(&pet, *in.PetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("pet %d: %w", *in.PetID, ErrNotFound)
			}
			return nil, err
		}
		if pet.OwnerID != in.CustomerID {
			return nil, fmt.Errorf("pet %d belongs to another customer: %w", *in.PetID, ErrForbidden)
		}
	}

	now := cs.clock.Now()

	// Resolve semua referensi dulu, sebelum buka transaksi.
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, li := range in.Items {
		qty := li.Quantity
		if qty <= 0 {
			qty = 1
		}
		catalogItem, err := cs.catalog.Resolve(li.CatalogItemID, in.ServiceKind)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			CatalogItemID: catalogItem.ID,
			Quantity:      qty,
			UnitPrice:     catalogItem.UnitPrice,
			Notes:         li.Notes,
			CreatedAt:     now,
		})
	}

	total := CalculateTotal(items, cs.cfg.BookingFee)
	reward := RewardFor(total, cs.cfg.RewardPercent)

	order := models.Order{
		ServiceKind: in.ServiceKind,
		CustomerID:  in.CustomerID,
		Invoice:     utils.GenerateInvoice(in.ServiceKind, now),
		PetID:       in.PetID,
		AddressRef:  in.AddressRef,
		BookingFee:  cs.cfg.BookingFee,
		TotalAmount: total,
		CreatedAt:   now,
	}

	tx := cs.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	payment := models.Payment{
		OrderID:      order.ID,
		Status:       models.PaymentStatusAwaiting,
		RewardAmount: reward,
		ExpiresAt:    now.Add(cs.cfg.PaymentWindow),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	order.OrderItems = items
	order.Payment = &payment
	return &order, nil
}

// GetOrder mengembalikan order + payment untuk pemiliknya. Customer lain
// dapat ErrForbidden; admin dicek di layer HTTP dan lewat jalur terpisah.
func (cs *CheckoutService) GetOrder(orderID, requestingCustomerID uint) (*models.Order, error) {
	var order models.Order
	err := cs.db.Preload("OrderItems").
		Preload("OrderItems.CatalogItem").
		Preload("Payment").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}

	if order.CustomerID != requestingCustomerID {
		return nil, fmt.Errorf("order %d belongs to another customer: %w", orderID, ErrForbidden)
	}

	return &order, nil
}

// ListByCustomer mengembalikan seluruh order milik satu customer, terbaru dulu.
func (cs *CheckoutService) ListByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := cs.db.Preload("OrderItems").
		Preload("Payment").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (cs *CheckoutService) validate(in CheckoutInput) error {
	if !models.ValidServiceKind(in.ServiceKind) {
		return fmt.Errorf("unknown service kind %q: %w", in.ServiceKind, ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("order needs at least one item: %w", ErrInvalidInput)
	}

	// Field wajib per kind
	switch in.ServiceKind {
	case models.KindHouseCall:
		if in.AddressRef == "" {
			return fmt.Errorf("house call needs an address: %w", ErrInvalidInput)
		}
	case models.KindPetHotel:
		if in.PetID == nil {
			return fmt.Errorf("pet hotel booking needs a pet: %w", ErrInvalidInput)
		}
	case models.KindProductCart:
		if in.AddressRef == "" {
			return fmt.Errorf("product delivery needs an address: %w", ErrInvalidInput)
		}
	}

	return nil
}
