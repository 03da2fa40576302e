package config

import (
	"log"
	"os"
	"strconv"
)

func getUint32Env(key string, fallback uint32) uint32 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseUint(value, 10, 32); err == nil {
			return uint32(i)
		}
		log.Printf("Invalid uint32 for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Invalid bool for %s, using fallback", key)
	}
	return fallback
}
