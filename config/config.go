package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	JWTSecret     string
	AllowedOrigin string
	// Gateway (store REST proxy)
	GatewayBaseURL       string
	GatewayToken         string
	GatewayTimeout       time.Duration
	GatewayRatePerSecond float64
	GatewayBurst         int
	// Circuit breaker around the gateway
	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration
	// Inbound rate limit
	RateLimitPerSecond float64
	RateLimitBurst     int
	// Set when a reverse proxy in front of the service sets X-Forwarded-For
	TrustProxy bool
	// View cache
	CacheViewTTL         time.Duration
	CacheCleanupInterval time.Duration
	// Site selected at startup, 0 for none
	DefaultSiteID int64
	// Product listing page size
	ProductsPerPage int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	return cfg
}

func fromEnv() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		GatewayBaseURL:       getEnv("GATEWAY_BASE_URL", ""),
		GatewayToken:         getEnv("GATEWAY_TOKEN", ""),
		GatewayTimeout:       getDurationEnv("GATEWAY_TIMEOUT", 15*time.Second),
		GatewayRatePerSecond: getFloatEnv("GATEWAY_RATE_PER_SECOND", 10),
		GatewayBurst:         getIntEnv("GATEWAY_BURST", 20),

		BreakerFailureThreshold: getUint32Env("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerOpenTimeout:      getDurationEnv("BREAKER_OPEN_TIMEOUT", 30*time.Second),

		// 50 req/s, burst 100
		RateLimitPerSecond: getFloatEnv("RATE_LIMIT_PER_SECOND", 50),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 100),
		TrustProxy:         getBoolEnv("TRUST_PROXY", false),

		CacheViewTTL:         getDurationEnv("CACHE_VIEW_TTL", 5*time.Minute),
		CacheCleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 10*time.Minute),

		DefaultSiteID:   getInt64Env("DEFAULT_SITE_ID", 0),
		ProductsPerPage: getIntEnv("PRODUCTS_PER_PAGE", 10),
	}
}

func (c *Config) Validate() error {
	if c.GatewayBaseURL == "" {
		return errors.New("GATEWAY_BASE_URL environment variable is required")
	}
	if c.GatewayTimeout <= 0 {
		return errors.New("GATEWAY_TIMEOUT must be positive")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
