package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	JWTSecret          string
	JWTExpiryHours     int
	GinMode            string
	ServerPort         string
	TrashRetentionDays int
}

func Load() *Config {
	// .env is optional; deployments usually set real environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "taskuser"),
		DBPassword:         getEnv("DB_PASSWORD", "taskpassword"),
		DBName:             getEnv("DB_NAME", "taskflow"),
		JWTSecret:          getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTExpiryHours:     getEnvInt("JWT_EXPIRY_HOURS", 24),
		GinMode:            getEnv("GIN_MODE", "debug"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		TrashRetentionDays: getEnvInt("TRASH_RETENTION_DAYS", 0),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
