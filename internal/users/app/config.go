package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/valentincuzin/usergate/pkg/tokenx"
)

type Config struct {
	Issuer     string // Optional: issuer claim for tokens (default: usergate)
	Secret     string // Required unless SecretFile is set: token signing secret
	SecretFile string // Optional: path to a file containing the signing secret

	TokenTTL     time.Duration // Optional: session token lifetime (default: 30m)
	StoreBackend string        // Optional: state store backend (sqlite, redis) (default: sqlite)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./usergate.db)
	RedisURL     string        // Required for redis backend: redis connection URL

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:     getEnvOrDefault("USERGATE_ISSUER", "usergate"),
		Secret:     os.Getenv("USERGATE_SECRET"),
		SecretFile: os.Getenv("USERGATE_SECRET_FILE"),

		TokenTTL:     getEnvDurationOrDefault("USERGATE_TOKEN_TTL", tokenx.DefaultSessionTTL),
		StoreBackend: getEnvOrDefault("USERGATE_STORE", "sqlite"),
		DatabaseFile: getEnvOrDefault("USERGATE_DATABASE_FILE", "usergate.db"),
		RedisURL:     os.Getenv("USERGATE_REDIS_URL"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// SigningSecret resolves the token signing secret from the environment
// or from the configured file. File contents win over the env variable
// so secrets can be mounted without leaking into the process table.
func (c Config) SigningSecret() ([]byte, error) {
	if c.SecretFile != "" {
		data, err := os.ReadFile(c.SecretFile)
		if err != nil {
			return nil, fmt.Errorf("read secret file: %w", err)
		}
		return []byte(strings.TrimSpace(string(data))), nil
	}
	if c.Secret == "" {
		return nil, fmt.Errorf("no signing secret configured: set USERGATE_SECRET or USERGATE_SECRET_FILE")
	}
	return []byte(c.Secret), nil
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

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
