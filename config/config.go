package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret rejects startup without a signing secret: with an
// empty key every HMAC-signed token would verify.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Env             string
	Port            string
	GatewayPort     string
	UpstreamBaseURL string
	RedisURL        string
	JWTSecret       string
	SessionTTL      time.Duration
	AllowedOrigins  []string
}

// Load reads configuration from the environment, with .env as a fallback for
// local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		GatewayPort:     getEnv("GATEWAY_PORT", "8081"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:9000/api/v1"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SessionTTL:      getDuration("SESSION_TTL", time.Hour*24*7),
		AllowedOrigins:  splitEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitEnv(key, defaultVal string) []string {
	raw := getEnv(key, defaultVal)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
