package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer              string        // Optional: issuer claim for session tokens (default: checkin-service)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./checkin.db)
	SessionKeyFile      string        // Optional: path to Ed25519 session key PEM; empty means ephemeral
	Timezone            string        // Optional: IANA zone that hour buckets are derived in (default: Asia/Tokyo)
	InternalNetworks    []string      // Optional: CIDR prefixes classified as the internal location
	InternalLocationID  string        // Optional: location tag for internal origins (default: internal)
	CheckinRateLimit    int           // Optional: max accepted signals per user per hour (default: 100)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:              getEnvOrDefault("CHECKIN_ISSUER", "checkin-service"),
		DatabaseFile:        getEnvOrDefault("CHECKIN_DATABASE_FILE", "checkin.db"),
		SessionKeyFile:      os.Getenv("CHECKIN_SESSION_KEY_FILE"), // Optional: ephemeral key when unset
		Timezone:            getEnvOrDefault("CHECKIN_TIMEZONE", "Asia/Tokyo"),
		InternalLocationID:  getEnvOrDefault("CHECKIN_INTERNAL_LOCATION_ID", "internal"),
		CheckinRateLimit:    getEnvIntOrDefault("CHECKIN_RATE_LIMIT", 100),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Comma-separated CIDR list, e.g. "10.0.0.0/8,192.168.0.0/16"
	if networks := os.Getenv("CHECKIN_INTERNAL_NETWORKS"); networks != "" {
		for _, cidr := range strings.Split(networks, ",") {
			if cidr = strings.TrimSpace(cidr); cidr != "" {
				cfg.InternalNetworks = append(cfg.InternalNetworks, cidr)
			}
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
