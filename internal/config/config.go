package config

import (
	"os"
	"strconv"

	"github.com/yukikurage/printshop-task-api/internal/constants"
)

type Config struct {
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	SQLitePath          string
	DBLogLevel          string
	GinMode             string
	HTTPAddr            string
	MutationMaxAttempts int
}

func Load() *Config {
	return &Config{
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "printshop"),
		DBPassword:          getEnv("DB_PASSWORD", "printshop"),
		DBName:              getEnv("DB_NAME", "printshop"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		SQLitePath:          getEnv("SQLITE_PATH", "printshop.db"),
		DBLogLevel:          getEnv("DB_LOG_LEVEL", "warn"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		MutationMaxAttempts: getEnvInt("MUTATION_MAX_ATTEMPTS", constants.DefaultMutationMaxAttempts),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt falls back to defaultValue when the variable is unset, malformed or not positive.
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
