package Controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/controllers"
	"github.com/petpalid/petcare-app/middlewares"
	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/services"
	"github.com/petpalid/petcare-app/utils"
)

func setupTestDBForPayments() *gorm.DB {
	db := openTestDB("payments_ctl")
	// Seed data: dua customer, satu admin, satu item katalog
	db.Create(&models.User{Name: "Customer1", Email: "pc1@example.com", Password: "secret", Role: "customer"})
	db.Create(&models.User{Name: "Customer2", Email: "pc2@example.com", Password: "secret", Role: "customer"})
	db.Create(&models.User{Name: "Admin1", Email: "pa1@example.com", Password: "secret", Role: "admin"})
	db.Create(&models.CatalogItem{ServiceKind: "consultation", Name: "Konsultasi Online", UnitPrice: 100000, Active: true})
	return db
}

func setupPaymentRouter(t *testing.T, db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	lifecycle := services.NewPaymentLifecycle(db, services.NewCoinService(db), services.SystemClock())
	proofs := services.NewProofStorage(t.TempDir())
	paymentCtrl := controllers.NewPaymentController(db, lifecycle, proofs)

	router.Use(asUser(userID, role))
	router.Use(middlewares.PaymentSecurityHeaders())
	router.GET("/payments/:payment_id", paymentCtrl.GetPayment)
	router.POST("/payments/:payment_id/proof", paymentCtrl.SubmitProof)
	router.GET("/payments/:payment_id/history", paymentCtrl.GetPaymentHistory)
	router.POST("/admin/payments/:payment_id/verify", paymentCtrl.VerifyPayment)
	return router
}

// checkoutOrder membuat order consultation milik customerID lewat checkout.
func checkoutOrder(t *testing.T, db *gorm.DB, customerID uint) *models.Order {
	checkoutSvc := services.NewCheckoutService(db, services.NewCatalogService(db), testConfig(), services.SystemClock())
	order, err := checkoutSvc.Checkout(services.CheckoutInput{
		ServiceKind: "consultation",
		CustomerID:  customerID,
		Items:       []services.LineItemInput{{CatalogItemID: 1, Quantity: 1}},
	})
	assert.NoError(t, err)
	return order
}

func proofUploadRequest(t *testing.T, url, filename string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("proof", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte("bukti transfer"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSubmitProofAndVerifyFlow(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPayments()
	order := checkoutOrder(t, db, 1)
	paymentID := strconv.Itoa(int(order.Payment.ID))

	// Customer upload bukti transfer
	customerRouter := setupPaymentRouter(t, db, 1, "customer")
	req := proofUploadRequest(t, "/payments/"+paymentID+"/proof", "bukti.jpg")
	w := httptest.NewRecorder()
	customerRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Response pembayaran tidak boleh di-cache
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	var proofResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &proofResp))
	assert.Equal(t, "Proof of payment submitted", proofResp["message"])
	data := proofResp["data"].(map[string]interface{})
	assert.Equal(t, "under_review", data["status"])

	// Admin konfirmasi
	adminRouter := setupPaymentRouter(t, db, 3, "admin")
	verifyBody, _ := json.Marshal(map[string]string{"decision": "confirm"})
	req, err := http.NewRequest("POST", "/admin/payments/"+paymentID+"/verify", bytes.NewBuffer(verifyBody))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	adminRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var verifyResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &verifyResp))
	verifyData := verifyResp["data"].(map[string]interface{})
	assert.Equal(t, "completed", verifyData["status"])
	assert.Equal(t, float64(3), verifyData["verified_by"])

	// Reward 10% dari 150000 terkredit ke customer
	var entry models.CoinEntry
	err = db.Where("payment_id = ?", order.Payment.ID).First(&entry).Error
	assert.NoError(t, err)
	assert.Equal(t, uint(1), entry.CustomerID)
	assert.Equal(t, int64(15000), entry.Amount)
}

func TestSubmitProofOtherCustomerForbidden(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPayments()
	order := checkoutOrder(t, db, 1)
	paymentID := strconv.Itoa(int(order.Payment.ID))

	router := setupPaymentRouter(t, db, 2, "customer")
	req := proofUploadRequest(t, "/payments/"+paymentID+"/proof", "bukti.jpg")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitProofRejectsBadFileType(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPayments()
	order := checkoutOrder(t, db, 1)
	paymentID := strconv.Itoa(int(order.Payment.ID))

	router := setupPaymentRouter(t, db, 1, "customer")
	req := proofUploadRequest(t, "/payments/"+paymentID+"/proof", "bukti.exe")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPaymentRequiresAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPayments()
	order := checkoutOrder(t, db, 1)
	paymentID := strconv.Itoa(int(order.Payment.ID))

	router := setupPaymentRouter(t, db, 1, "customer")
	verifyBody, _ := json.Marshal(map[string]string{"decision": "confirm"})
	req, err := http.NewRequest("POST", "/admin/payments/"+paymentID+"/verify", bytes.NewBuffer(verifyBody))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyPaymentBeforeProofIsUnprocessable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPayments()
	order := checkoutOrder(t, db, 1)
	paymentID := strconv.Itoa(int(order.Payment.ID))

	// Belum ada bukti: edge reject tidak tersedia dari awaiting_payment
	router := setupPaymentRouter(t, db, 3, "admin")
	verifyBody, _ := json.Marshal(map[string]string{"decision": "reject"})
	req, err := http.NewRequest("POST", "/admin/payments/"+paymentID+"/verify", bytes.NewBuffer(verifyBody))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
