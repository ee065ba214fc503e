package config

import (
	"os"
	"strconv"
)

// DefaultSessionSecret is only suitable for local development.
const DefaultSessionSecret = "default-secret-key-change-me"

type Config struct {
	Port          string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBLogLevel    string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	OpenAIAPIKey  string
	SeedDemoData  bool
}

// Load reads the configuration from the environment. The default driver is
// an in-memory sqlite database, so nothing outlives the process unless
// DB_DRIVER points at mysql or postgres.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "task_tracker"),
		DBLogLevel:    getEnv("DB_LOG_LEVEL", "warn"),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		GinMode:       getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		SeedDemoData:  getEnvBool("SEED_DEMO_DATA", true),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
