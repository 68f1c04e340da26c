package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"estatehub/client/config"
	"estatehub/client/internal/stubserver"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Infof("Using database at: %s", cfg.Server.DBPath)
	db, err := stubserver.OpenDatabase(cfg.Server.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	if cfg.Server.SeedData {
		if err := stubserver.Seed(db); err != nil {
			logger.WithError(err).Fatal("Failed to seed demo data")
		}
	}

	server := stubserver.NewServer(db, logger, stubserver.Options{
		JWTSecret: cfg.Server.JWTSecret,
		TokenTTL:  time.Duration(cfg.Server.TokenTTL) * time.Hour,
	})

	logger.Infof("Starting stub listing backend on port %s", cfg.Server.Port)
	if err := server.Router().Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
