package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/utils"
)

type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// GetCatalog -> listing publik, bisa difilter per service kind
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	kind := c.Query("service_kind")

	query := cc.DB.Where("active = ?", true)
	if kind != "" {
		if !models.ValidServiceKind(kind) {
			utils.RespondError(c, http.StatusBadRequest, errInvalidKind(kind))
			return
		}
		query = query.Where("service_kind = ?", kind)
	}

	var items []models.CatalogItem
	if err := query.Order("service_kind, name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Catalog items", items)
}

// GetCatalogItem -> detail 1 item
func (cc *CatalogController) GetCatalogItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.CatalogItem
	if err := cc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Catalog item detail", item)
}

// CreateCatalogItem -> admin menambahkan item baru
func (cc *CatalogController) CreateCatalogItem(c *gin.Context) {
	_, role, _ := currentUser(c)
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		ServiceKind string `json:"service_kind" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		UnitPrice   int64  `json:"unit_price" binding:"required,min=1"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidServiceKind(req.ServiceKind) {
		utils.RespondError(c, http.StatusBadRequest, errInvalidKind(req.ServiceKind))
		return
	}

	item := models.CatalogItem{
		ServiceKind: req.ServiceKind,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Active:      true,
	}
	if err := cc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Catalog item created", item)
}

// UpdateCatalogItem -> admin mengubah harga/nama/status aktif
func (cc *CatalogController) UpdateCatalogItem(c *gin.Context) {
	_, role, _ := currentUser(c)
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.CatalogItem
	if err := cc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		UnitPrice   *int64  `json:"unit_price"`
		Active      *bool   `json:"active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Harga baru hanya berlaku untuk order berikutnya; order lama menyimpan
	// unit price sendiri.
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := cc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Catalog item updated", item)
}

func errInvalidKind(kind string) error {
	return fmt.Errorf("unknown service kind %q", kind)
}
