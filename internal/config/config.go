// Package config loads runtime configuration for the wagering API from
// environment variables. Config lives in the environment so the same binary
// runs unchanged in development and production; a local .env file is read
// for convenience when present.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service.
type Config struct {
	Port        string // TCP port the HTTP server listens on
	DatabaseURL string // PostgreSQL connection string
	Env         string // "development", "staging", or "production"
	LogLevel    string // logrus level name; empty picks a default per Env
}

// Load reads configuration from the environment and returns a populated
// Config. A missing .env file is fine — in production the platform sets
// real environment variables and the godotenv error is discarded.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"), // required; startup fails without it
		Env:         env,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}
}

// IsDevelopment reports whether the service is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
