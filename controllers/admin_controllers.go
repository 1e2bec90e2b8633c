package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> ringkasan untuk dashboard admin: jumlah payment per
// status, jumlah order per service kind, dan total koin yang sudah keluar.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	_, role, _ := currentUser(c)
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var stats struct {
		PaymentsByStatus []struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		} `json:"payments_by_status"`
		OrdersByKind []struct {
			ServiceKind string `json:"service_kind"`
			Count       int64  `json:"count"`
			Revenue     int64  `json:"revenue"`
		} `json:"orders_by_kind"`
		CoinsIssued int64 `json:"coins_issued"`
	}

	if err := ac.DB.Model(&models.Payment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&stats.PaymentsByStatus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := ac.DB.Model(&models.Order{}).
		Select("service_kind, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as revenue").
		Group("service_kind").
		Scan(&stats.OrdersByKind).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := ac.DB.Model(&models.CoinEntry{}).
		Where("amount > 0").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.CoinsIssued).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
