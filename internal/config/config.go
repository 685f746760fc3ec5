// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package config loads layered configuration for the Motodex server using
// Koanf v2. Precedence, highest wins: environment variables, then an
// optional YAML config file, then built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	API       APIConfig       `koanf:"api"`
	Updater   UpdaterConfig   `koanf:"updater"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
	// MaxBodyBytes caps request body size. Default 1 MiB.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// DatabaseConfig holds BadgerDB settings.
type DatabaseConfig struct {
	// Path is the Badger data directory. Empty means in-memory (tests).
	Path string `koanf:"path"`
	// SeedOnStart loads the generated seed corpus when the catalog is empty.
	SeedOnStart bool `koanf:"seed_on_start"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// JWTSecret signs bearer tokens. Must be at least 32 characters.
	JWTSecret string `koanf:"jwt_secret"`
	// TokenLifetime is how long issued tokens stay valid.
	TokenLifetime time.Duration `koanf:"token_lifetime"`
	// Argon2Time is the argon2id time parameter (work factor).
	Argon2Time uint32 `koanf:"argon2_time"`
	// Argon2MemoryKiB is the argon2id memory parameter in KiB.
	Argon2MemoryKiB uint32 `koanf:"argon2_memory_kib"`
	// RateLimitWrites is mutations allowed per user-IP per minute.
	RateLimitWrites int `koanf:"rate_limit_writes"`
	// RateLimitReads is reads allowed per IP per minute.
	RateLimitReads int `koanf:"rate_limit_reads"`
	// RateLimitDisabled turns off rate limiting (CI only).
	RateLimitDisabled bool     `koanf:"rate_limit_disabled"`
	CORSOrigins       []string `koanf:"cors_origins"`
}

// APIConfig holds query surface settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// UpdaterConfig holds daily-update scheduler settings.
type UpdaterConfig struct {
	Enabled bool `koanf:"enabled"`
	// Interval between scheduled runs.
	Interval time.Duration `koanf:"interval"`
	// Workers bounds per-manufacturer parallelism.
	Workers int `koanf:"workers"`
	// FeedRatePerSecond paces simulated feed fetches.
	FeedRatePerSecond float64 `koanf:"feed_rate_per_second"`
}

// AnalyticsConfig holds the best-effort event recorder settings.
type AnalyticsConfig struct {
	Enabled bool `koanf:"enabled"`
	// QueueSize bounds the in-flight event buffer; overflow is dropped.
	QueueSize int `koanf:"queue_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before file and env
// layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8085,
			Timeout:      30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Database: DatabaseConfig{
			Path:        "/data/motodex",
			SeedOnStart: false,
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			TokenLifetime:   7 * 24 * time.Hour,
			Argon2Time:      3,
			Argon2MemoryKiB: 64 * 1024,
			RateLimitWrites: 100,
			RateLimitReads:  1000,
			CORSOrigins:     []string{},
		},
		API: APIConfig{
			DefaultPageSize: 25,
			MaxPageSize:     3000,
		},
		Updater: UpdaterConfig{
			Enabled:           true,
			Interval:          24 * time.Hour,
			Workers:           4,
			FeedRatePerSecond: 10,
		},
		Analytics: AnalyticsConfig{
			Enabled:   true,
			QueueSize: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks invariants that cannot be expressed as defaults.
func (c *Config) Validate() error {
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters (got %d)", len(c.Security.JWTSecret))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.API.DefaultPageSize <= 0 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("invalid page size configuration: default=%d max=%d",
			c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	if c.Updater.Workers <= 0 {
		return fmt.Errorf("updater workers must be positive: %d", c.Updater.Workers)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
