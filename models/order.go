package models

import "time"

// ServiceKind menentukan domain dari sebuah order. Mesin pembayaran sendiri
// tidak peduli: semua kind melewati lifecycle yang sama.
const (
	KindClinicBooking = "clinic_booking"
	KindHouseCall     = "house_call"
	KindConsultation  = "consultation"
	KindPetHotel      = "pet_hotel"
	KindProductCart   = "product_cart"
)

// ServiceKinds daftar kind yang valid, untuk validasi input.
var ServiceKinds = []string{
	KindClinicBooking,
	KindHouseCall,
	KindConsultation,
	KindPetHotel,
	KindProductCart,
}

// Order adalah satu permintaan customer untuk satu layanan. Immutable setelah
// dibuat: koreksi dilakukan lewat record baru, bukan edit. Status lifecycle
// hidup di Payment (1:1), bukan di sini.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ServiceKind string      `gorm:"type:varchar(30);not null;index" json:"service_kind"`
	CustomerID  uint        `gorm:"not null;index" json:"customer_id"`
	Customer    User        `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
	Invoice     string      `gorm:"type:varchar(64);unique;not null" json:"invoice"`
	PetID       *uint       `json:"pet_id,omitempty"`
	Pet         *Pet        `gorm:"foreignKey:PetID;references:ID" json:"pet,omitempty"`
	AddressRef  string      `gorm:"type:varchar(255)" json:"address_ref,omitempty"`
	BookingFee  int64       `gorm:"not null" json:"booking_fee"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	Payment     *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

// ValidServiceKind mengecek apakah kind dikenal.
func ValidServiceKind(kind string) bool {
	for _, k := range ServiceKinds {
		if k == kind {
			return true
		}
	}
	return false
}
