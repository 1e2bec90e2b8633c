package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/config"
	"github.com/petpalid/petcare-app/controllers"
	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/services"
	"github.com/petpalid/petcare-app/utils"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		BookingFee:    50000,
		RewardPercent: 10,
		PaymentWindow: 24 * time.Hour,
		SweepInterval: time.Minute,
	}
}

// asUser menggantikan auth middleware di test: identity langsung ditaruh
// di context seperti yang dilakukan AuthMiddleware setelah validasi token.
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func openTestDB(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.CatalogItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.PaymentHistory{},
		&models.CoinEntry{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupTestDBForOrders() *gorm.DB {
	db := openTestDB("orders_ctl")
	// Seed data: dua customer, satu admin, satu item katalog klinik
	db.Create(&models.User{Name: "Customer1", Email: "c1@example.com", Password: "secret", Role: "customer"})
	db.Create(&models.User{Name: "Customer2", Email: "c2@example.com", Password: "secret", Role: "customer"})
	db.Create(&models.User{Name: "Admin1", Email: "a1@example.com", Password: "secret", Role: "admin"})
	db.Create(&models.CatalogItem{ServiceKind: "clinic_booking", Name: "Vaksinasi Rabies", UnitPrice: 300000, Active: true})
	return db
}

func setupOrderRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	checkoutSvc := services.NewCheckoutService(db, services.NewCatalogService(db), testConfig(), services.SystemClock())
	orderCtrl := controllers.NewOrderController(db, checkoutSvc)

	router.Use(asUser(userID, role))
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders", orderCtrl.GetMyOrders)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	return router
}

func TestCreateOrderAndGetDetail(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()
	router := setupOrderRouter(db, 1, "customer")

	payload := map[string]interface{}{
		"service_kind": "clinic_booking",
		"items": []map[string]interface{}{
			{"catalog_item_id": 1, "quantity": 1},
		},
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/orders", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &createResp)
	assert.NoError(t, err)
	assert.Equal(t, "Order created", createResp["message"])

	data := createResp["data"].(map[string]interface{})
	assert.Equal(t, float64(350000), data["total_amount"])
	assert.Equal(t, float64(50000), data["booking_fee"])

	payment := data["payment"].(map[string]interface{})
	assert.Equal(t, "awaiting_payment", payment["status"])
	assert.Equal(t, float64(35000), payment["reward_amount"])

	orderID := int(data["id"].(float64))

	// Uji GET detail order
	req, err = http.NewRequest("GET", "/orders/"+strconv.Itoa(orderID), nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var getResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &getResp)
	assert.NoError(t, err)
	assert.Equal(t, "Order detail", getResp["message"])
	getData := getResp["data"].(map[string]interface{})
	assert.Equal(t, float64(orderID), getData["id"].(float64))
}

func TestGetOrderOtherCustomerForbidden(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()

	// Customer 1 membuat order
	checkoutSvc := services.NewCheckoutService(db, services.NewCatalogService(db), testConfig(), services.SystemClock())
	order, err := checkoutSvc.Checkout(services.CheckoutInput{
		ServiceKind: "clinic_booking",
		CustomerID:  1,
		Items:       []services.LineItemInput{{CatalogItemID: 1, Quantity: 1}},
	})
	assert.NoError(t, err)

	// Customer 2 mencoba melihatnya
	router := setupOrderRouter(db, 2, "customer")
	req, err := http.NewRequest("GET", "/orders/"+strconv.Itoa(int(order.ID)), nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin boleh
	adminRouter := setupOrderRouter(db, 3, "admin")
	req, err = http.NewRequest("GET", "/orders/"+strconv.Itoa(int(order.ID)), nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	adminRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOrderUnknownKind(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders()
	router := setupOrderRouter(db, 1, "customer")

	payload := map[string]interface{}{
		"service_kind": "grooming_spa",
		"items": []map[string]interface{}{
			{"catalog_item_id": 1, "quantity": 1},
		},
	}
	payloadBytes, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", "/orders", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
