// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/models"
)

// GetCredential returns the stored credential for username, or
// ErrUserNotFound.
func (db *DB) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	var c models.Credential
	err := db.conn.QueryRowContext(ctx,
		`SELECT username, password_hash FROM users WHERE username = ?`, username).
		Scan(&c.Username, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credential for %q: %w", username, err)
	}
	return &c, nil
}

// UpdatePasswordHash replaces the stored hash for username, or returns
// ErrUserNotFound when no such row exists.
func (db *DB) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE username = ?`, passwordHash, username)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// EnsureAdmin creates the admin credential row if it does not exist yet.
// Returns true when the row was created. An existing row is never
// overwritten, so a configured bootstrap password stops mattering once
// the admin has changed it.
func (db *DB) EnsureAdmin(ctx context.Context, username, passwordHash string) (bool, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)
		 ON CONFLICT(username) DO NOTHING`, username, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to ensure admin credential: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
