package config

import (
	"os"
	"strconv"
)

// Config holds the runtime settings for the storefront service.
// All values come from the environment (a .env file is loaded by main);
// every field has a working default so the service can start bare.
type Config struct {
	Addr                  string
	DatabaseURL           string
	TaxRate               float64
	FreeShippingThreshold float64
	MaxQuantity           int
}

func Load() Config {
	addr := os.Getenv("STOREFRONT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:                  addr,
		DatabaseURL:           os.Getenv("STOREFRONT_DB_URL"),
		TaxRate:               envFloat("STOREFRONT_TAX_RATE", 0.10),
		FreeShippingThreshold: envFloat("STOREFRONT_FREE_SHIPPING_OVER", 50),
		MaxQuantity:           envInt("STOREFRONT_MAX_QTY", 10),
	}
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
