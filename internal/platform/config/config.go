package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	WebhookSecret string

	// General ledger account codes used for automatic journal posting.
	GLCashCode             string
	GLCustomerDepositsCode string
	GLFeeIncomeCode        string

	WorkerCount     int
	WorkerQueueSize int
	JobMaxAttempts  int

	// RateLimit uses the ulule/limiter formatted rate syntax, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "bankman-core")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("WEBHOOK_SECRET", "")
	viper.SetDefault("GL_CASH_CODE", "101200")
	viper.SetDefault("GL_CUSTOMER_DEPOSITS_CODE", "201100")
	viper.SetDefault("GL_FEE_INCOME_CODE", "401100")
	viper.SetDefault("WORKER_COUNT", 4)
	viper.SetDefault("WORKER_QUEUE_SIZE", 256)
	viper.SetDefault("JOB_MAX_ATTEMPTS", 3)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.WebhookSecret = viper.GetString("WEBHOOK_SECRET")
	if cfg.WebhookSecret == "" {
		log.Println("Warning: WEBHOOK_SECRET environment variable not set. Webhook signatures will use an empty key.")
	}

	cfg.GLCashCode = viper.GetString("GL_CASH_CODE")
	cfg.GLCustomerDepositsCode = viper.GetString("GL_CUSTOMER_DEPOSITS_CODE")
	cfg.GLFeeIncomeCode = viper.GetString("GL_FEE_INCOME_CODE")

	cfg.WorkerCount = viper.GetInt("WORKER_COUNT")
	cfg.WorkerQueueSize = viper.GetInt("WORKER_QUEUE_SIZE")
	cfg.JobMaxAttempts = viper.GetInt("JOB_MAX_ATTEMPTS")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
