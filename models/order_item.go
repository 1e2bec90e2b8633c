package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order         Order       `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CatalogItemID uint        `gorm:"not null" json:"catalog_item_id"`
	CatalogItem   CatalogItem `gorm:"foreignKey:CatalogItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"catalog_item"`
	Quantity      int         `gorm:"not null" json:"quantity"`
	// Harga satuan saat order dibuat; harga katalog bisa berubah belakangan.
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// Subtotal harga item ini.
func (oi OrderItem) Subtotal() int64 {
	return oi.UnitPrice * int64(oi.Quantity)
}
