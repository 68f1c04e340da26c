package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Client configuration
	Client struct {
		// Base URL of the listing API
		APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000"`

		// Request timeout in seconds
		RequestTimeout int `env:"API_REQUEST_TIMEOUT" envDefault:"30"`

		// Path of the sqlite file holding the persisted session
		SessionDBPath string `env:"SESSION_DB_PATH" envDefault:"estatehub-session.db"`
	}

	// Stub backend configuration
	Server struct {
		// Port the stub backend listens on
		Port string `env:"SERVER_PORT" envDefault:"5000"`

		// Path of the stub backend's sqlite database
		DBPath string `env:"SERVER_DB_PATH" envDefault:"estatehub.db"`

		// Secret used to sign bearer tokens
		JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

		// Token lifetime in hours
		TokenTTL int `env:"TOKEN_TTL_HOURS" envDefault:"720"`

		// Seed demo data on startup when the database is empty
		SeedData bool `env:"SEED_DATA" envDefault:"true"`
	}

	// Log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
