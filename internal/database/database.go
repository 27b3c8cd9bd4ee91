// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

// Package database persists photo metadata and the admin credential in
// SQLite and is the only writer of that state.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/config"
)

// DB wraps the SQLite connection pool and provides data access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// schema is applied on every startup; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS photos (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	src           TEXT NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	date          TEXT NOT NULL,
	upload_date   TEXT NOT NULL,
	display_order INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_photos_display_order ON photos(display_order);

CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL
);
`

// New opens the database, configures the connection pool and initializes
// the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dsn := cfg.Path
	if dsn != ":memory:" {
		// The database directory may not exist on first start.
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
		// WAL keeps readers unblocked while uploads write; busy_timeout
		// queues writers instead of failing with SQLITE_BUSY.
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Path)
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// configureConnectionPool bounds concurrent database work.
func (db *DB) configureConnectionPool() {
	maxOpen := db.cfg.MaxOpenConns
	maxIdle := db.cfg.MaxIdleConns
	if db.cfg.Path == ":memory:" {
		// Each pooled connection to :memory: would get its own database.
		maxOpen = 1
		maxIdle = 1
	}
	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(maxIdle)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

func (db *DB) initialize() error {
	_, err := db.conn.Exec(schema)
	return err
}

// Ping verifies the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}
