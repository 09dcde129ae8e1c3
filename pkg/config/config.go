package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// Backend REST API the portal talks to, e.g. http://localhost:8001/api
	APIBaseURL        string
	APITimeoutSeconds int

	// memory | postgres | redis
	SessionStore      string
	DatabaseURL       string
	RedisURL          string
	SessionTTLMinutes int
	SessionCookie     string
	CookieSecure      bool

	OTelServiceName  string
	OTelOTLPEndpoint string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		APIBaseURL:        strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8001/api"), "/"),
		APITimeoutSeconds: getEnvInt("API_TIMEOUT_SECONDS", 30),
		SessionStore:      strings.ToLower(getEnv("SESSION_STORE", "memory")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 24*60),
		SessionCookie:     getEnv("SESSION_COOKIE", "hs_session"),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		OTelServiceName:   getEnv("OTEL_SERVICE_NAME", "hiresafe-portal"),
		OTelOTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	return cfg
}

func (c Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
