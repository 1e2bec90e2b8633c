package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/petpalid/petcare-app/config"
	"github.com/petpalid/petcare-app/middlewares"
	"github.com/petpalid/petcare-app/models"
	"github.com/petpalid/petcare-app/router"
	"github.com/petpalid/petcare-app/services"
	"github.com/petpalid/petcare-app/utils"
)

func main() {
	// Load .env sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	cfg := config.LoadAppConfig()
	clock := services.SystemClock()

	// Sweeper pembayaran kadaluarsa, dimiliki lifecycle proses
	coinSvc := services.NewCoinService(db)
	lifecycle := services.NewPaymentLifecycle(db, coinSvc, clock)
	sweeper := services.NewExpirationSweeper(db, lifecycle, clock, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// Setup router + rate limiter global (50 req/detik per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r := router.SetupRouter(db, cfg, clock)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
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
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
