package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/config"
	"github.com/petpalid/petcare-app/controllers"
	"github.com/petpalid/petcare-app/middlewares"
	"github.com/petpalid/petcare-app/services"
)

// SetupRouter merakit seluruh dependency dan route aplikasi.
func SetupRouter(db *gorm.DB, cfg config.AppConfig, clock services.Clock) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Services
	catalogSvc := services.NewCatalogService(db)
	coinSvc := services.NewCoinService(db)
	lifecycle := services.NewPaymentLifecycle(db, coinSvc, clock)
	checkoutSvc := services.NewCheckoutService(db, catalogSvc, cfg, clock)
	proofStorage := services.NewProofStorage("public/uploads/payment_proofs")

	// Controllers
	userCtrl := controllers.NewUserController(db)
	catalogCtrl := controllers.NewCatalogController(db)
	petCtrl := controllers.NewPetController(db)
	orderCtrl := controllers.NewOrderController(db, checkoutSvc)
	paymentCtrl := controllers.NewPaymentController(db, lifecycle, proofStorage)
	coinCtrl := controllers.NewCoinController(db, coinSvc)
	adminCtrl := controllers.NewAdminController(db)

	// File bukti transfer bisa diakses admin lewat path statis
	r.Static("/uploads", "public/uploads")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Katalog bisa dilihat tanpa login
	r.GET("/catalog", catalogCtrl.GetCatalog)
	r.GET("/catalog/:item_id", catalogCtrl.GetCatalogItem)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		// PETS
		auth.GET("/pets", petCtrl.GetMyPets)
		auth.POST("/pets", petCtrl.CreatePet)
		auth.PATCH("/pets/:pet_id", petCtrl.UpdatePet)
		auth.DELETE("/pets/:pet_id", petCtrl.DeletePet)

		// ORDERS (checkout + status)
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		// PAYMENTS (customer)
		payments := auth.Group("/payments")
		payments.Use(middlewares.PaymentSecurityHeaders())
		payments.Use(middlewares.PaymentRateLimiter())
		payments.Use(middlewares.LogPaymentRequest())
		{
			payments.GET("/:payment_id", paymentCtrl.GetPayment)
			payments.POST("/:payment_id/proof", paymentCtrl.SubmitProof)
			payments.GET("/:payment_id/history", paymentCtrl.GetPaymentHistory)
		}

		// COINS
		auth.GET("/coins/balance", coinCtrl.GetBalance)
		auth.GET("/coins/history", coinCtrl.GetHistory)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.GET("/users", userCtrl.GetAllUsers)

		// CATALOG
		admin.POST("/catalog", catalogCtrl.CreateCatalogItem)
		admin.PATCH("/catalog/:item_id", catalogCtrl.UpdateCatalogItem)

		// ORDERS & PAYMENTS
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/payments", paymentCtrl.GetPayments)
		admin.POST("/payments/:payment_id/verify", paymentCtrl.VerifyPayment)
		admin.GET("/payments/:payment_id/history", paymentCtrl.GetPaymentHistory)

		// DASHBOARD
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	}

	// WebSocket untuk dashboard admin
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/events", controllers.EventsHandler)
	}

	return r
}
