// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components via constructors.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/linkshelf/internal/platform/sec"
)

// # Configuration Schema

// Config holds all runtime configuration for the Linkshelf API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Set only behind a reverse proxy that overwrites X-Forwarded-For / X-Real-IP.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Key-Value store (Redis). Optional: enables the AI generation quota.
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTSecret        string        `env:"JWT_SECRET,required,notEmpty"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	JWTAccessTTL     time.Duration `env:"JWT_ACCESS_TTL"  envDefault:"24h"`
	JWTRefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`

	// Role given to self-registered accounts
	SignupDefaultRole string `env:"SIGNUP_DEFAULT_ROLE" envDefault:"user"`

	// Cross-Origin Resource Sharing
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`

	// AI description provider (OpenAI-compatible endpoint)
	AIAPIKey      string        `env:"AI_API_KEY"`
	AIBaseURL     string        `env:"AI_BASE_URL"     envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	AIModel       string        `env:"AI_MODEL"        envDefault:"gemini-2.0-flash"`
	AITemperature float32       `env:"AI_TEMPERATURE"  envDefault:"0.7"`
	AIMaxTokens   int           `env:"AI_MAX_TOKENS"   envDefault:"150"`
	AITopP        float32       `env:"AI_TOP_P"        envDefault:"0.8"`
	AITimeout     time.Duration `env:"AI_TIMEOUT"      envDefault:"30s"`
	AIHourlyQuota int           `env:"AI_HOURLY_QUOTA" envDefault:"30"`

	// Object Storage (S3-compatible) for cover images
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string `env:"S3_PUBLIC_URL"`
	UploadMaxBytes    int64  `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`

	// Optional file that receives a JSON copy of every request failure
	ErrorLogFile string `env:"ERROR_LOG_FILE"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !sec.Role(c.SignupDefaultRole).Valid() {
		return fmt.Errorf("config: SIGNUP_DEFAULT_ROLE %q is not a known role", c.SignupDefaultRole)
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("config: UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RefreshSecret returns the refresh signing secret, falling back to the access secret.
func (c *Config) RefreshSecret() string {
	if c.JWTRefreshSecret != "" {
		return c.JWTRefreshSecret
	}
	return c.JWTSecret
}

// StorageEnabled reports whether cover image uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}
