package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment     string
	AppId           string
	SLASweepSeconds int   // Interval between SLA monitor sweeps
	SeedLeadCount   int   // Number of mock leads generated at startup
	SeedRandom      int64 // Fixed seed for the data generator (0 = time-based)
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		AppId:           getEnv("APP_ID", "nexus-crm"),
		SLASweepSeconds: getEnvInt("SLA_SWEEP_SECONDS", 30),
		SeedLeadCount:   getEnvInt("SEED_LEAD_COUNT", 35),
		SeedRandom:      int64(getEnvInt("SEED_RANDOM", 0)),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using fallback %d", key, fallback)
	}
	return fallback
}
