// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

// Package main is the entry point for the College Gallery server.
//
// The server hosts a photo gallery web application: a public gallery
// page backed by a JSON API, and an admin dashboard for uploading,
// deleting and reordering photos. Photo metadata lives in SQLite;
// image files live on the local filesystem.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from config file and environment (Koanf v2)
//  2. Logging: structured zerolog output (console or JSON)
//  3. Database: SQLite with WAL journaling, schema created on startup
//  4. Admin bootstrap: seed the admin credential if the users table is empty
//  5. File store: image directory for uploaded photos
//  6. HTTP server: Chi router serving the API, metrics, images and static site
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables with the GALLERY_ prefix
//   - Config file (config.yaml, or GALLERY_CONFIG)
//   - Built-in defaults
//
// Required settings:
//   - GALLERY_SECURITY_JWT_SECRET: 32+ character secret for session tokens
//   - GALLERY_SECURITY_ADMIN_PASSWORD: initial admin password (first run only)
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections, waits up to 10s for in-flight requests,
// then closes the database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/api"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/auth"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/config"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/database"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/logging"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("image_dir", cfg.Storage.ImageDir).
		Str("web_root", cfg.Server.WebRoot).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if err := bootstrapAdmin(context.Background(), db, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Failed to bootstrap admin credential")
	}

	files, err := storage.New(cfg.Storage.ImageDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize image store")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	handler := api.NewHandler(db, files, cfg, jwtManager)
	router := api.NewRouter(handler, jwtManager, cfg).Setup()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// bootstrapAdmin seeds the admin credential on first run. An existing
// credential is never overwritten, so password changes made through the
// dashboard survive restarts even when the configured password differs.
func bootstrapAdmin(ctx context.Context, db *database.DB, cfg *config.Config) error {
	if cfg.Security.AdminPassword == "" {
		logging.Warn().Msg("No admin password configured; skipping admin bootstrap. " +
			"Seed a credential with the hashpw tool or set GALLERY_SECURITY_ADMIN_PASSWORD.")
		return nil
	}

	hash, err := auth.HashPassword(cfg.Security.AdminPassword)
	if err != nil {
		return err
	}

	created, err := db.EnsureAdmin(ctx, cfg.Security.AdminUsername, hash)
	if err != nil {
		return err
	}
	if created {
		logging.Info().Str("username", cfg.Security.AdminUsername).Msg("Admin credential created")
	}
	return nil
}
