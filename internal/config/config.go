package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	BackendBaseURL  string
	BackendBasePath string
	RequestTimeout  time.Duration
	BearerPrefix    string
	HTTPSuccessMin  int
	HTTPSuccessMax  int

	SessionCookieName string
	SessionTTL        time.Duration
	MaxUploadSize     int64
	RateLimitRPM      int
	AuthRateLimitRPM  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8501"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		BackendBaseURL:     getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
		BackendBasePath:    getEnv("BACKEND_BASE_PATH", "api"),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		BearerPrefix:       getEnv("BEARER_PREFIX", "Bearer"),
		HTTPSuccessMin:     getInt("HTTP_SUCCESS_MIN", 200),
		HTTPSuccessMax:     getInt("HTTP_SUCCESS_MAX", 300),
		SessionCookieName:  getEnv("SESSION_COOKIE_NAME", "qualifaize_session"),
		SessionTTL:         getDuration("SESSION_TTL", 12*time.Hour),
		MaxUploadSize:      getInt64("MAX_UPLOAD_SIZE", 52428800),
		RateLimitRPM:       getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:   getInt("AUTH_RATE_LIMIT_RPM", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if strings.TrimSpace(c.BackendBaseURL) == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.HTTPSuccessMin >= c.HTTPSuccessMax {
		return fmt.Errorf("HTTP_SUCCESS_MIN must be below HTTP_SUCCESS_MAX")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}
