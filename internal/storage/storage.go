// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

// Package storage writes uploaded image binaries to the image directory
// and removes them when their photo record is deleted. Stored names get a
// millisecond-timestamp prefix so repeated uploads of the same file never
// collide.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/logging"
)

// FileStore saves and removes image files under a single directory.
type FileStore struct {
	dir string

	// seq disambiguates files stored within the same millisecond.
	seq atomic.Uint64
}

// New creates the image directory if needed and returns a store for it.
func New(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("image directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes r to a new file named after originalName with a timestamp
// prefix, and returns the stored file name (not the full path).
func (s *FileStore) Save(originalName string, r io.Reader) (string, error) {
	name := s.storedName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("failed to create image file %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		// A half-written file must not stay linked from the gallery.
		if rmErr := os.Remove(path); rmErr != nil {
			logging.Warn().Err(rmErr).Str("file", name).Msg("Failed to clean up partial upload")
		}
		return "", fmt.Errorf("failed to write image file %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file %s: %w", name, err)
	}

	return name, nil
}

// Remove deletes a stored file by name. A missing file is not an error;
// the photo row is the source of truth and the file may already be gone.
func (s *FileStore) Remove(name string) error {
	path := filepath.Join(s.dir, filepath.Base(name))
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file %s: %w", name, err)
	}
	return nil
}

// storedName builds "<unix-millis>-<seq>-<base>" from the client-supplied
// name. Only the base name survives, so traversal segments in the upload
// cannot escape the image directory.
func (s *FileStore) storedName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == ".." || base == "/" || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), s.seq.Add(1), base)
}
