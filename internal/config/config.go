package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env                  string
	HTTPAddr             string
	Timezone             string
	StorageDriver        string
	StorageFilePath      string
	RedisURL             string
	RabbitMQURL          string
	RabbitMQWorkerMode   string
	CorsAllowedOrigins   []string
	TrackingTokenSecret  string
	TrackingTokenTTL     time.Duration
	PaymentDelay         time.Duration
	ReservationMaxTables int
	CashierMaxTables     int
	WSHeartbeatInterval  time.Duration
	SessionIdleTTL       time.Duration
	SessionMaxClients    int
}

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

func Load() Config {
	cfg := Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8086"),
		Timezone:             getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		StorageDriver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		StorageFilePath:      getEnv("STORAGE_FILE_PATH", "data/localstore.json"),
		RedisURL:             getEnv("REDIS_URL", ""),
		RabbitMQURL:          getEnv("RABBITMQ_URL", ""),
		RabbitMQWorkerMode:   getEnv("RABBITMQ_WORKER_MODE", "off"),
		CorsAllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		TrackingTokenSecret:  getEnv("TRACKING_TOKEN_SECRET", "dev-insecure-tracking-secret"),
		TrackingTokenTTL:     getEnvDuration("TRACKING_TOKEN_TTL", 24*time.Hour),
		PaymentDelay:         getEnvDuration("PAYMENT_DELAY", 3*time.Second),
		ReservationMaxTables: getEnvInt("RESERVATION_MAX_TABLES", 2),
		CashierMaxTables:     getEnvInt("CASHIER_MAX_TABLES", 4),
		WSHeartbeatInterval:  getEnvDuration("WS_HEARTBEAT_INTERVAL", 30*time.Second),
		SessionIdleTTL:       getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		SessionMaxClients:    getEnvInt("SESSION_MAX_CLIENTS", 10000),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageFile, StorageRedis:
	default:
		cfg.StorageDriver = StorageMemory
	}
	if cfg.ReservationMaxTables <= 0 {
		cfg.ReservationMaxTables = 2
	}
	if cfg.CashierMaxTables <= 0 {
		cfg.CashierMaxTables = 4
	}
	if cfg.PaymentDelay < 0 {
		cfg.PaymentDelay = 0
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
