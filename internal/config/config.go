// Package config holds environment-driven settings and the domain constants
// shared by the services.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// TokenTTL is the lifetime of issued access tokens.
	TokenTTL = 72 * time.Hour

	// TransactionIDPrefix prefixes every generated payment transaction id.
	TransactionIDPrefix = "TXN"

	// NotifyChannel is the Redis pub/sub channel carrying live
	// notification events to connected websocket clients.
	NotifyChannel = "notify:events"

	// OverdueGracePeriod is how long past the due date a pending fee is
	// tolerated before the sweep flips it to overdue.
	OverdueGracePeriod = 24 * time.Hour
)

// Config is the process configuration, read once from the environment.
type Config struct {
	ListenAddr    string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string

	// TelegramToken and TelegramChatID configure the optional staff alert
	// bot; alerts are disabled when the token is empty.
	TelegramToken  string
	TelegramChatID int64
}

// Load reads the configuration from environment variables, applying
// development defaults where unset.
func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		DatabaseDSN:    databaseDSN(),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: getEnvInt64("TELEGRAM_STAFF_CHAT_ID", 0),
	}
}

func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "hostel"),
		getEnv("DB_PASSWORD", "hostel"),
		getEnv("DB_NAME", "hostelhub"),
		getEnv("DB_PORT", "5432"),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
