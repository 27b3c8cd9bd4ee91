// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	return s
}

func TestSaveWritesFile(t *testing.T) {
	s := setupStore(t)

	name, err := s.Save("photo.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasSuffix(name, "-photo.jpg") {
		t.Errorf("stored name %q should end with the original name", name)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("stored content = %q, want jpeg-bytes", data)
	}
}

func TestSaveNamesNeverCollide(t *testing.T) {
	s := setupStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		name, err := s.Save("same.jpg", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
		if seen[name] {
			t.Fatalf("duplicate stored name %q", name)
		}
		seen[name] = true
	}
}

func TestSaveStripsPathSegments(t *testing.T) {
	s := setupStore(t)

	tests := []string{
		"../../etc/passwd",
		"/abs/path/evil.jpg",
		`..\..\windows\evil.jpg`,
	}
	for _, in := range tests {
		name, err := s.Save(in, strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save(%q) failed: %v", in, err)
		}
		if strings.Contains(name, "/") || strings.Contains(name, `\`) || strings.Contains(name, "..") {
			t.Errorf("stored name %q from %q still carries path segments", name, in)
		}
		if _, err := os.Stat(filepath.Join(s.Dir(), name)); err != nil {
			t.Errorf("file for %q not stored inside the image dir: %v", in, err)
		}
	}
}

func TestRemove(t *testing.T) {
	s := setupStore(t)

	name, err := s.Save("gone.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := s.Remove(name); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), name)); !os.IsNotExist(err) {
		t.Error("file still exists after Remove")
	}

	// Removing a missing file is not an error.
	if err := s.Remove("never-existed.jpg"); err != nil {
		t.Errorf("Remove(missing) error = %v, want nil", err)
	}
}
