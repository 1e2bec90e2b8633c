package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/models"
)

// CatalogService me-resolve referensi item per service kind. Ini satu-satunya
// tempat perbedaan antar domain (layanan klinik vs kamar hotel vs produk)
// terlihat; mesin pembayaran tidak tahu apa-apa soal itu.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Resolve mencari item katalog aktif untuk kind yang diminta.
// Item yang tidak ada atau nonaktif -> ErrNotFound; item milik kind lain ->
// ErrConflict (referensi valid tapi tidak kompatibel dengan order ini).
func (cs *CatalogService) Resolve(itemID uint, serviceKind string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := cs.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("catalog item %d: %w", itemID, ErrNotFound)
		}
		return nil, err
	}

	if !item.Active {
		return nil, fmt.Errorf("catalog item %d inactive: %w", itemID, ErrNotFound)
	}
	if item.ServiceKind != serviceKind {
		return nil, fmt.Errorf("catalog item %d is %s, order is %s: %w",
			itemID, item.ServiceKind, serviceKind, ErrConflict)
	}

	return &item, nil
}
