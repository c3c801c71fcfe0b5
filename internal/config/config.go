package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Env  string
	Port string

	// Tokens. The signing secret is deliberately not defaulted: it must be
	// injected per environment so it can be rotated without a rebuild.
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Admin. Empty disables the administrative endpoints entirely.
	AdminAPIKey string
}

// Load reads configuration from the environment, honoring a .env file
// when one is present. It fails when JWT_SECRET is unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	expStr := getEnv("JWT_EXPIRES_IN", "30m")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 30m\n", expStr)
		expDur = 30 * time.Minute
	}
	config.JWTExpirationDur = expDur

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
