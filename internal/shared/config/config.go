package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string
	JWTSecret   string

	DocumentDir      string
	MaxDocumentBytes int64

	EmailEnabled bool
	EmailFrom    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	OutboxPollInterval time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
	RunMigrations      bool
	ConnectRetries     int
}

func Load() Config {
	return Config{
		Port:               getEnv("PORT", "3000"),
		Environment:        getEnv("APP_ENV", "development"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBName:             getEnv("DB_NAME", "go_leave"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		DocumentDir:        getEnv("DOCUMENT_DIR", "storage/documents"),
		MaxDocumentBytes:   int64(getEnvInt("MAX_DOCUMENT_BYTES", 5<<20)),
		EmailEnabled:       getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:          getEnv("EMAIL_FROM", "no-reply@example.com"),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:         getEnvBool("SMTP_USE_TLS", true),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		ConnectRetries:     getEnvInt("CONNECT_RETRIES", 5),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks the settings every process needs. Broker and SMTP settings
// are checked by the processes that use them.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBHost) == "" || strings.TrimSpace(c.DBName) == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.MaxDocumentBytes < 1024 {
		return fmt.Errorf("MAX_DOCUMENT_BYTES must be at least 1024")
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
