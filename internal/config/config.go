// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every tunable the binaries read.
type Config struct {
	// Client side.
	APIBaseURL string
	SessionDir string

	// Devserver side.
	AppPort     string
	DBDriver    string // "sqlite" or "postgres"
	DBDSN       string
	RabbitMQURL string
	JWTSecret   string
}

// Load reads configuration. Precedence: environment variables, then .env,
// then defaults.
func Load() *Config {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("SESSION_DIR", defaultSessionDir())
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "vitrine.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "dev-only-secret")
	v.AutomaticEnv()

	return &Config{
		APIBaseURL:  v.GetString("API_BASE_URL"),
		SessionDir:  v.GetString("SESSION_DIR"),
		AppPort:     v.GetString("APP_PORT"),
		DBDriver:    v.GetString("DB_DRIVER"),
		DBDSN:       v.GetString("DB_DSN"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
	}
}

func defaultSessionDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".vitrine"
	}
	return filepath.Join(base, "vitrine")
}
