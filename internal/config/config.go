package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yashd04xyz/LC-web/internal/pricing"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimit       int // requests per minute per IP on /api

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDBName   string

	KafkaBrokers []string
	OrderTopic   string

	Pricing pricing.Config
}

// Load reads configuration from the environment, with an optional .env
// file for local development. Missing keys fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "3000"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "storefront"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDBName:   getEnv("POSTGRES_DB", "orders"),

		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		OrderTopic:   getEnv("ORDER_TOPIC", "order-confirmed"),

		Pricing: pricing.Config{
			ShippingThreshold: getEnvFloat("SHIPPING_THRESHOLD", 1000),
			ShippingFlatFee:   getEnvFloat("SHIPPING_FLAT_FEE", 49),
			TaxRate:           getEnvFloat("TAX_RATE", 0.05),
			DiscountRate:      getEnvFloat("DISCOUNT_RATE", 0),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
