package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPath           string
	RedisHost        string
	RedisPort        string
	SessionSecret    string
	JWTSecret        string
	JWTTTL           time.Duration
	AdminInviteToken string
	ClientURL        string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	return &Config{
		Port:             getEnv("PORT", "8000"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "taskuser"),
		DBPassword:       getEnv("DB_PASSWORD", "taskpassword"),
		DBName:           getEnv("DB_NAME", "taskdesk"),
		DBPath:           getEnv("DB_PATH", "taskdesk.db"),
		RedisHost:        getEnv("REDIS_HOST", ""),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		SessionSecret:    getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:        getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTTTL:           getDuration("JWT_TTL", 7*24*time.Hour),
		AdminInviteToken: getEnv("ADMIN_INVITE_TOKEN", ""),
		ClientURL:        getEnv("CLIENT_URL", "*"),
	}
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
