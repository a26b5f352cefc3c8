package config

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string
	SeedDemo      bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SeedDemo:      os.Getenv("SEED_DEMO") != "false",
	}

	if cfg.DBDSN == "" {
		cfg.DBDSN = "project-hub.db"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		// a restart invalidates any pending wipe token
		cfg.SessionSecret = uuid.NewString()
		log.Println("SESSION_SECRET is not set, using a random secret")
	}

	return cfg
}
