// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, gateway) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/qwsnxnjene/cloud-storage/internal/platform/constants"
)

// # Server Configuration Schema

// Config holds all runtime configuration for the Cloud Storage API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), used for login throttling
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret signs the HS256 bearer tokens.
	SessionSecret string `env:"SESSION_SECRET,required"`
}

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// # Client Configuration Schema

// ClientConfig holds runtime configuration for the cloudctl CLI.
type ClientConfig struct {

	// APIBaseURL is the root of the Cloud Storage API the client talks to.
	APIBaseURL string `env:"CLOUD_API_URL" envDefault:"http://localhost:8080"`

	// TokenPath overrides where the bearer token is persisted between runs.
	// When empty, the token lives in the per-user config directory.
	TokenPath string `env:"CLOUD_TOKEN_PATH"`
}

// LoadClient parses environment variables into a [ClientConfig] struct and
// resolves the token path to an absolute location.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.TokenPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: cannot resolve user config directory: %w", err)
		}
		cfg.TokenPath = filepath.Join(configDir, constants.ClientConfigDirName, constants.TokenFileName)
	}

	return cfg, nil
}
