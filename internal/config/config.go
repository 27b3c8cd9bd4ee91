// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

// Package config provides layered configuration for the gallery server:
// built-in defaults, an optional YAML file, and environment variables,
// loaded in that order of precedence via koanf.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the gallery server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Storage  StorageConfig  `koanf:"storage"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// ReadTimeout and WriteTimeout bound slow clients. WriteTimeout must
	// leave room for large multipart uploads.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// WebRoot is the directory the static frontend is served from.
	WebRoot string `koanf:"web_root"`

	// CORSOrigins lists allowed CORS origins. The original frontend was
	// opened straight from disk, so the default is permissive.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" is accepted for tests.
	Path string `koanf:"path"`

	// MaxOpenConns bounds concurrent database work.
	MaxOpenConns int `koanf:"max_open_conns"`
	MaxIdleConns int `koanf:"max_idle_conns"`
}

// StorageConfig holds image file storage settings.
type StorageConfig struct {
	// ImageDir is the directory uploaded image binaries are written to
	// and served from under /img/.
	ImageDir string `koanf:"image_dir"`

	// MaxUploadFiles caps how many files one upload request may carry.
	MaxUploadFiles int `koanf:"max_upload_files"`

	// MaxUploadBytes caps the total multipart memory per request.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// AdminUsername is the single admin account name.
	AdminUsername string `koanf:"admin_username"`

	// AdminPassword seeds the admin row on first start when no credential
	// exists yet. Ignored once the users table has the admin row.
	AdminPassword string `koanf:"admin_password"`

	// JWTSecret signs admin session tokens. Required, minimum 32 bytes.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is how long an issued token stays valid.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// LoginRateLimit and LoginRateWindow throttle /api/login per client IP.
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`

	// RateLimitRequests and RateLimitWindow throttle the rest of the API.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns a Config populated with all default values.
// Defaults are applied first, then overridden by file and env layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         3000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			WebRoot:      "./web",
			CORSOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Path:         "./data/gallery.db",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		Storage: StorageConfig{
			ImageDir:       "./img",
			MaxUploadFiles: 100,
			MaxUploadBytes: 32 << 20, // 32MB in-memory multipart budget
		},
		Security: SecurityConfig{
			AdminUsername:     "admin",
			AdminPassword:     "",
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			LoginRateLimit:    5,
			LoginRateWindow:   5 * time.Minute,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Storage.ImageDir == "" {
		return fmt.Errorf("storage.image_dir is required")
	}
	if c.Storage.MaxUploadFiles <= 0 {
		return fmt.Errorf("storage.max_upload_files must be positive")
	}
	if c.Security.AdminUsername == "" {
		return fmt.Errorf("security.admin_username is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive")
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
