package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDriver string
	DBPath   string

	// PostgreSQL settings, used when DBDriver is "postgres".
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	// Storage key the full console state is persisted under.
	StateKey string

	// Delivery simulation tuning.
	DelayMinMs       int
	DelayMaxMs       int
	ReplyDelayMs     int
	ReplyProbability float64
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBPath:   getEnv("DB_PATH", "./console.db"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "whatsapp_console"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StateKey: getEnv("STATE_KEY", "appState"),

		DelayMinMs:       getEnvInt("DELAY_MIN_MS", 500),
		DelayMaxMs:       getEnvInt("DELAY_MAX_MS", 1500),
		ReplyDelayMs:     getEnvInt("REPLY_DELAY_MS", 3000),
		ReplyProbability: getEnvFloat("REPLY_PROBABILITY", 0.3),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %g", key, value, fallback)
		return fallback
	}
	return f
}
