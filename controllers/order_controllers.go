package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/events"
	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/services"
	"github.com/petpalid/petcare-app/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
}

func NewOrderController(db *gorm.DB, checkout *services.CheckoutService) *OrderController {
	return &OrderController{DB: db, Checkout: checkout}
}

// CreateOrder -> checkout: resolve item katalog, hitung harga, buat order +
// payment (awaiting_payment) dalam satu transaksi.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type ReqBody struct {
		ServiceKind string                   `json:"service_kind" binding:"required"`
		Items       []services.LineItemInput `json:"items" binding:"required"`
		PetID       *uint                    `json:"pet_id"`
		AddressRef  string                   `json:"address_ref"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Checkout.Checkout(services.CheckoutInput{
		ServiceKind: body.ServiceKind,
		CustomerID:  userID,
		Items:       body.Items,
		PetID:       body.PetID,
		AddressRef:  body.AddressRef,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created (%s, total %s)",
		order.Invoice, order.ServiceKind, utils.FormatRupiah(order.TotalAmount))

	// Broadcast ke dashboard admin
	events.BroadcastOrderCreated(*order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail order; hanya pemilik (atau admin) yang boleh lihat.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))

	requester := userID
	if role == models.RoleAdmin {
		// Admin melewati ownership check: pakai customer_id milik order.
		var order models.Order
		if err := oc.DB.First(&order, id).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		requester = order.CustomerID
	}

	order, err := oc.Checkout.GetOrder(uint(id), requester)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetMyOrders -> daftar order milik user yang login
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	orders, err := oc.Checkout.ListByCustomer(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

// GetAllOrders -> admin melihat semua order, opsional filter kind/status
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	_, role, _ := currentUser(c)
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	query := oc.DB.Preload("OrderItems").Preload("Payment")
	if kind := c.Query("service_kind"); kind != "" {
		query = query.Where("service_kind = ?", kind)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}
