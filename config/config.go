package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Ibrahim4Grace/spot/pkg/constant"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Port      string
	DBURL     string
	RedisAddr string

	// Distinct signing secrets per token kind. Rotating one invalidates all
	// outstanding tokens of that kind.
	AuthTokenSecret    string
	RefreshTokenSecret string
	EmailTokenSecret   string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	EmailTokenExpiry   time.Duration

	BcryptCost int
}

func Load() *Config {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DBURL:              mustGetEnv("DB_URL"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		AuthTokenSecret:    mustGetEnv("JWT_AUTH_SECRET"),
		RefreshTokenSecret: mustGetEnv("JWT_REFRESH_SECRET"),
		EmailTokenSecret:   mustGetEnv("JWT_EMAIL_SECRET"),
		AccessTokenExpiry:  getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		RefreshTokenExpiry: getEnvAsDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
		EmailTokenExpiry:   getEnvAsDuration("EMAIL_TOKEN_EXPIRY", 24*time.Hour),
		BcryptCost:         getEnvAsInt("BCRYPT_SALT_ROUNDS", constant.DefaultBcryptCost),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %s", key, defaultVal)
		return defaultVal
	}
	return val
}
