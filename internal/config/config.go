package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	KeyPolicyRound   = "round"
	KeyPolicySession = "session"
)

type Config struct {
	AppPort     string
	LogLevel    string
	LogJSON     bool
	KeyPolicy   string
	PresetsFile string

	// Verification service
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	APIRateLimit   int
	APIRateWindow  int
	AllowedOrigin  string
	ServiceVersion string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	keyPolicy := strings.ToLower(strings.TrimSpace(os.Getenv("KEY_POLICY")))
	if keyPolicy != KeyPolicySession {
		keyPolicy = KeyPolicyRound
	}

	presets := os.Getenv("PRESETS_FILE")
	if presets == "" {
		presets = "presets.yaml"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60 // seconds
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	version := os.Getenv("SERVICE_VERSION")
	if version == "" {
		version = "dev"
	}

	return &Config{
		AppPort:        port,
		LogLevel:       logLevel,
		LogJSON:        os.Getenv("LOG_JSON") == "true",
		KeyPolicy:      keyPolicy,
		PresetsFile:    presets,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
		AllowedOrigin:  os.Getenv("ALLOWED_ORIGIN"),
		ServiceVersion: version,
	}
}
