package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// JWTSecret is the shared secret the external identity provider signs
	// access tokens with. The backend only verifies, never issues.
	JWTSecret string
	JWTIssuer string

	// Rate limiting, e.g. "100-M" = 100 requests per minute per IP.
	RateLimit string

	// Product analytics. Empty disables tracking.
	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "solvik-identity")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTIssuer:     viper.GetString("JWT_ISSUER"),
		RateLimit:     viper.GetString("RATE_LIMIT"),
		PosthogAPIKey: viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Token verification will reject every request.")
	}

	return cfg, nil
}
