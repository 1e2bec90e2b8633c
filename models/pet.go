package models

import "time"

// Pet milik customer, dipakai untuk booking hotel dan house-call
type Pet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Owner     User      `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Species   string    `gorm:"type:varchar(50);not null" json:"species"` // dog, cat, ...
	Breed     string    `gorm:"type:varchar(100)" json:"breed"`
	AgeMonths int       `json:"age_months"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
