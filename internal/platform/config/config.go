// Copyright (c) 2026 D42X. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Secrets are passed to TokenService/BodyCipher via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// aesBlockSize is the AES block size; both the key and the IV must be
// exactly this long for the AES-128-CBC body cipher.
const aesBlockSize = 16

// # Configuration Schema

// Config holds all runtime configuration for the D42X API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Cache tier. Backend "memory" needs no external service; "redis"
	// requires REDIS_URL and shares entries across replicas.
	CacheBackend  string        `env:"CACHE_BACKEND" envDefault:"memory"`
	RedisURL      string        `env:"REDIS_URL"`
	CacheTTL      time.Duration `env:"CACHE_TTL"      envDefault:"5m"`
	CacheCapacity int           `env:"CACHE_CAPACITY" envDefault:"256"`

	// Token signing. The secret is configured (not generated per process)
	// so tokens survive restarts and horizontal scaling.
	JWTSecret     string `env:"JWT_SECRET,required"`
	TokenIssuer   string `env:"ISS,required"`
	TokenAudience string `env:"AUD,required"`
	TokenTTL      int    `env:"EXP" envDefault:"3600"`

	// Body cipher shared secret. Both must be exactly 16 ASCII bytes.
	AESKey string `env:"AES_KEY,required"`
	AESIV  string `env:"AES_IV,required"`

	// Cross-Origin Resource Sharing: ";"-separated origins, or "*" for any.
	CORSOrigins string `env:"CORS" envDefault:"*"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values the downstream constructors cannot work with.
func (c *Config) validate() error {
	if len(c.AESKey) != aesBlockSize {
		return fmt.Errorf("config: AES_KEY must be %d bytes, got %d", aesBlockSize, len(c.AESKey))
	}

	if len(c.AESIV) != aesBlockSize {
		return fmt.Errorf("config: AES_IV must be %d bytes, got %d", aesBlockSize, len(c.AESIV))
	}

	if c.CacheBackend != "memory" && c.CacheBackend != "redis" {
		return fmt.Errorf("config: unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	if c.CacheBackend == "redis" && c.RedisURL == "" {
		return fmt.Errorf("config: CACHE_BACKEND=redis requires REDIS_URL")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: EXP must be positive, got %d", c.TokenTTL)
	}

	return nil
}

// TokenLifetime returns the configured token TTL as a [time.Duration].
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
