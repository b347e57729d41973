package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries the environment-driven settings shared by both services.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string

	// ProductServiceURL is where the user service reaches the cart API.
	ProductServiceURL string
	// ProvisionTimeout bounds the remote cart-creation call during
	// registration.
	ProvisionTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:              getEnv("SHOP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ProductServiceURL: getEnv("PRODUCT_SERVICE_URL", "http://localhost:8081"),
		ProvisionTimeout:  getEnvDuration("PROVISION_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}
