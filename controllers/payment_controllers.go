package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/events"
	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/services"
	"github.com/petpalid/petcare-app/utils"
)

type PaymentController struct {
	DB        *gorm.DB
	Lifecycle *services.PaymentLifecycle
	Proofs    *services.ProofStorage
}

func NewPaymentController(db *gorm.DB, lifecycle *services.PaymentLifecycle, proofs *services.ProofStorage) *PaymentController {
	return &PaymentController{DB: db, Lifecycle: lifecycle, Proofs: proofs}
}

// SubmitProof -> customer mengupload bukti transfer (multipart), payment
// pindah ke under_review. Upload ulang selama masih direview diperbolehkan.
func (pc *PaymentController) SubmitProof(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("payment_id"))

	// Pastikan payment milik user ini sebelum menerima file
	payment, err := pc.Lifecycle.GetPayment(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if payment.Order.CustomerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	file, err := c.FormFile("proof")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("proof file is required"))
		return
	}

	fileRef, err := pc.Proofs.Save(c, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	updated, err := pc.Lifecycle.SubmitProof(uint(id), fileRef,
		services.Actor{Kind: models.ActorCustomer, UserID: &userID})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Proof submitted for payment %d by user %d", updated.ID, userID)
	events.BroadcastPaymentUpdate(*updated)
	events.BroadcastAdminNotification(fmt.Sprintf("Payment %d is waiting for review", updated.ID))

	utils.RespondJSON(c, http.StatusOK, "Proof of payment submitted", updated)
}

// VerifyPayment -> admin menyetujui atau menolak bukti transfer.
// decision: "confirm" | "reject"
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	adminID, role, _ := currentUser(c)
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("payment_id"))

	var req struct {
		Decision string `json:"decision" binding:"required,oneof=confirm reject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var (
		payment *models.Payment
		err     error
	)
	if req.Decision == "confirm" {
		payment, err = pc.Lifecycle.Confirm(uint(id), adminID)
	} else {
		payment, err = pc.Lifecycle.Reject(uint(id), adminID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Payment %d %sed by admin %d -> %s", payment.ID, req.Decision, adminID, payment.Status)
	events.BroadcastPaymentUpdate(*payment)

	utils.RespondJSON(c, http.StatusOK, "Payment "+payment.Status, payment)
}

// GetPayment -> detail payment; pemilik order atau admin.
func (pc *PaymentController) GetPayment(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("payment_id"))

	payment, err := pc.Lifecycle.GetPayment(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if role != models.RoleAdmin && payment.Order.CustomerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// GetPaymentHistory -> audit log transisi status sebuah payment.
func (pc *PaymentController) GetPaymentHistory(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("payment_id"))

	payment, err := pc.Lifecycle.GetPayment(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if role != models.RoleAdmin && payment.Order.CustomerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	history, err := pc.Lifecycle.History(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment history", history)
}

// GetPayments -> admin melihat daftar pembayaran, opsional filter status.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	_, role, _ := currentUser(c)
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	query := pc.DB.Preload("Order")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}
