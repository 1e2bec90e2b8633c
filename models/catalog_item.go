package models

import "time"

// CatalogItem adalah referensi yang bisa dibeli/dipesan per service kind:
// layanan klinik, tipe kamar hotel, paket konsultasi, kunjungan house-call,
// atau produk di store. Perbedaan antar domain diisolasi di sini, bukan di
// mesin pembayaran.
type CatalogItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ServiceKind string `gorm:"type:varchar(30);not null;index" json:"service_kind"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// Harga satuan dalam Rupiah utuh (int64), bukan floating point.
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
