package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// AppConfig menampung setting bisnis yang dibaca dari environment.
type AppConfig struct {
	// Biaya booking flat per order, Rupiah utuh.
	BookingFee int64
	// Persentase reward koin dari total order.
	RewardPercent int64
	// Jendela waktu pembayaran sejak checkout.
	PaymentWindow time.Duration
	// Interval sweep pembayaran kadaluarsa.
	SweepInterval time.Duration
}

// LoadAppConfig membaca konfigurasi aplikasi dengan default yang masuk akal.
func LoadAppConfig() AppConfig {
	return AppConfig{
		BookingFee:    envInt64("BOOKING_FEE", 50000),
		RewardPercent: envInt64("REWARD_PERCENT", 10),
		PaymentWindow: time.Duration(envInt64("PAYMENT_WINDOW_HOURS", 24)) * time.Hour,
		SweepInterval: time.Duration(envInt64("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

// InitDB membuka koneksi MySQL berdasarkan environment.
func InitDB() (*gorm.DB, error) {
	user := getenv("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	host := getenv("DB_HOST", "127.0.0.1")
	port := getenv("DB_PORT", "3306")
	name := getenv("DB_NAME", "petcare")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
