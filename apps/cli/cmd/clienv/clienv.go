// Package clienv resolves CLI settings from flags, the process environment and an optional .env file.
package clienv

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config mirrors the subset of API server settings the CLI needs.
type Config struct {
	DatabaseURL      string `env:"DATABASE_URL"`
	AuthJWTSecret    string `env:"AUTH_JWT_SECRET"`
	AuthJWTAudience  string `env:"AUTH_JWT_AUDIENCE" envDefault:"authenticated"`
	SuperadminUserID string `env:"SUPERADMIN_USER_ID"`
}

// Load reads .env when present and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Pick returns flag when set, otherwise fallback. An empty result is reported as missing under name.
func Pick(name, flag, fallback string) (string, error) {
	if v := strings.TrimSpace(flag); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(fallback); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s is required", name)
}

// DatabaseURL resolves the connection string from the --database-url flag or DATABASE_URL.
func DatabaseURL(flag string) (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return Pick("database url (--database-url or DATABASE_URL)", flag, cfg.DatabaseURL)
}
