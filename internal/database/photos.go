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
	"time"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/metrics"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/models"
)

// ListPhotos returns all photos sorted ascending by display order.
// Equal orders fall back to insertion (id) order.
func (db *DB) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, src, title, description, date, display_order
		 FROM photos
		 ORDER BY display_order ASC, id ASC`)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("list", "photos").Inc()
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	photos := make([]models.Photo, 0)
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.Src, &p.Title, &p.Description, &p.Date, &p.Order); err != nil {
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photo rows: %w", err)
	}

	metrics.DBQueryDuration.WithLabelValues("list", "photos").Observe(time.Since(start).Seconds())
	return photos, nil
}

// GetPhoto returns a single photo by id, or ErrPhotoNotFound.
func (db *DB) GetPhoto(ctx context.Context, id int64) (*models.Photo, error) {
	var p models.Photo
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, src, title, description, date, display_order
		 FROM photos WHERE id = ?`, id).
		Scan(&p.ID, &p.Src, &p.Title, &p.Description, &p.Date, &p.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("get", "photos").Inc()
		return nil, fmt.Errorf("failed to query photo %d: %w", id, err)
	}
	return &p, nil
}

// CreatePhotos inserts a batch of photos in one transaction. Each photo
// receives a display order continuing from the current maximum, in slice
// order, and its assigned id and order are written back to the element.
func (db *DB) CreatePhotos(ctx context.Context, photos []*models.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxOrder int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(display_order), 0) FROM photos`).Scan(&maxOrder); err != nil {
		return fmt.Errorf("failed to read max display order: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO photos (src, title, description, date, upload_date, display_order)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range photos {
		maxOrder++
		p.Order = maxOrder
		if p.UploadDate.IsZero() {
			p.UploadDate = time.Now().UTC()
		}
		res, err := stmt.ExecContext(ctx,
			p.Src, p.Title, p.Description, p.Date,
			p.UploadDate.Format(time.RFC3339), p.Order)
		if err != nil {
			metrics.DBQueryErrors.WithLabelValues("insert", "photos").Inc()
			return fmt.Errorf("failed to insert photo %q: %w", p.Src, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted id: %w", err)
		}
		p.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit photo batch: %w", err)
	}

	metrics.DBQueryDuration.WithLabelValues("insert", "photos").Observe(time.Since(start).Seconds())
	return nil
}

// DeletePhoto removes the photo row by id, or returns ErrPhotoNotFound.
func (db *DB) DeletePhoto(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("delete", "photos").Inc()
		return fmt.Errorf("failed to delete photo %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

// ReorderPhotos assigns each id its 1-based position in ids as the new
// display order. The whole sequence is applied in one transaction so a
// failed update rolls the order back instead of leaving it half applied.
// Unknown ids are skipped, matching the per-id update semantics.
func (db *DB) ReorderPhotos(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE photos SET display_order = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare order update: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i+1, id); err != nil {
			metrics.DBQueryErrors.WithLabelValues("reorder", "photos").Inc()
			return fmt.Errorf("failed to set order for photo %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit new order: %w", err)
	}

	metrics.DBQueryDuration.WithLabelValues("reorder", "photos").Observe(time.Since(start).Seconds())
	return nil
}

// CountPhotos returns the number of photo rows.
func (db *DB) CountPhotos(ctx context.Context) (int64, error) {
	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}
