// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListPhotosEmptyArray(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.doJSON(t, http.MethodGet, "/api/photos", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty gallery body = %q, want []", got)
	}
}

func TestUploadSingleFile(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doUpload(t, token,
		map[string]string{"title": "Campus", "date": "2024-05-01", "description": "main building"},
		[]uploadFile{{name: "campus.jpg", content: "jpeg-bytes"}})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMessage(t, rec); msg != "Photos uploaded successfully!" {
		t.Errorf("message = %q", msg)
	}

	photos := ts.listPhotos(t)
	if len(photos) != 1 {
		t.Fatalf("gallery has %d photos, want 1", len(photos))
	}
	p := photos[0]
	// Single-file uploads keep the title without a sequence suffix.
	if p.Title != "Campus" {
		t.Errorf("title = %q, want Campus", p.Title)
	}
	if p.Description != "main building" {
		t.Errorf("description = %q", p.Description)
	}
	if p.Date != "2024-05-01" {
		t.Errorf("date = %q, want 2024-05-01", p.Date)
	}
	if !strings.HasPrefix(p.Src, "img/") || !strings.HasSuffix(p.Src, "-campus.jpg") {
		t.Errorf("src = %q, want img/<prefix>-campus.jpg", p.Src)
	}
	if p.Order != 1 {
		t.Errorf("order = %d, want 1", p.Order)
	}

	// The binary actually landed in the image dir.
	stored := strings.TrimPrefix(p.Src, "img/")
	data, err := os.ReadFile(filepath.Join(ts.files.Dir(), stored))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestUploadBatchTitlesAndOrder(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	// The §8 concrete scenario: two files, shared title and date.
	rec := ts.doUpload(t, token,
		map[string]string{"title": "Trip", "date": "2024-05-01"},
		[]uploadFile{
			{name: "one.jpg", content: "a"},
			{name: "two.jpg", content: "b"},
		})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	photos := ts.listPhotos(t)
	if len(photos) != 2 {
		t.Fatalf("gallery has %d photos, want 2", len(photos))
	}

	if photos[0].Title != "Trip (1)" || photos[1].Title != "Trip (2)" {
		t.Errorf("titles = %q, %q, want Trip (1), Trip (2)", photos[0].Title, photos[1].Title)
	}
	if photos[0].Date != "2024-05-01" || photos[1].Date != "2024-05-01" {
		t.Errorf("dates = %q, %q, want both 2024-05-01", photos[0].Date, photos[1].Date)
	}
	if photos[0].Src == photos[1].Src {
		t.Errorf("src paths must be distinct, both %q", photos[0].Src)
	}
	if photos[1].Order != photos[0].Order+1 {
		t.Errorf("orders = %d, %d, want consecutive", photos[0].Order, photos[1].Order)
	}
}

func TestUploadFallbacks(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	// No metadata at all: title falls back to the filename per file,
	// description stays empty, date defaults to today.
	rec := ts.doUpload(t, token, nil, []uploadFile{
		{name: "first.jpg", content: "a"},
		{name: "second.jpg", content: "b"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	photos := ts.listPhotos(t)
	if photos[0].Title != "first.jpg (1)" || photos[1].Title != "second.jpg (2)" {
		t.Errorf("titles = %q, %q, want filename-based with suffixes",
			photos[0].Title, photos[1].Title)
	}
	if photos[0].Description != "" {
		t.Errorf("description = %q, want empty", photos[0].Description)
	}
	if photos[0].Date == "" {
		t.Error("date should default to today, got empty")
	}
}

func TestUploadRejectsBadDate(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doUpload(t, token,
		map[string]string{"date": "05/01/2024"},
		[]uploadFile{{name: "x.jpg", content: "a"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed date", rec.Code)
	}
}

func TestUploadRejectsNoFiles(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doUpload(t, token, map[string]string{"title": "empty"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for zero files", rec.Code)
	}
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	ts := setupTestServer(t)
	ts.cfg.Storage.MaxUploadFiles = 3
	token := ts.adminToken(t)

	files := make([]uploadFile, 4)
	for i := range files {
		files[i] = uploadFile{name: fmt.Sprintf("f%d.jpg", i), content: "x"}
	}
	rec := ts.doUpload(t, token, nil, files)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 over the batch cap", rec.Code)
	}
}

func TestUploadRequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.doUpload(t, "", nil, []uploadFile{{name: "x.jpg", content: "a"}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without token", rec.Code)
	}
	if len(ts.listPhotos(t)) != 0 {
		t.Error("unauthenticated upload must not create photos")
	}
}

func TestDeletePhoto(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doUpload(t, token, nil, []uploadFile{{name: "gone.jpg", content: "x"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d", rec.Code)
	}
	photos := ts.listPhotos(t)
	stored := strings.TrimPrefix(photos[0].Src, "img/")

	del := ts.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/photos/%d", photos[0].ID), token, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", del.Code, del.Body.String())
	}
	if msg := decodeMessage(t, del); msg != "Photo deleted successfully!" {
		t.Errorf("message = %q", msg)
	}

	if len(ts.listPhotos(t)) != 0 {
		t.Error("photo row should be gone")
	}
	if _, err := os.Stat(filepath.Join(ts.files.Dir(), stored)); !os.IsNotExist(err) {
		t.Error("backing file should be removed")
	}
}

func TestDeletePhotoRemovesRowEvenWithoutFile(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doUpload(t, token, nil, []uploadFile{{name: "vanished.jpg", content: "x"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d", rec.Code)
	}
	photos := ts.listPhotos(t)
	stored := strings.TrimPrefix(photos[0].Src, "img/")

	// Delete the backing file behind the store's back.
	if err := os.Remove(filepath.Join(ts.files.Dir(), stored)); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	del := ts.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/photos/%d", photos[0].ID), token, nil)
	if del.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200 even with the file missing", del.Code)
	}
	if len(ts.listPhotos(t)) != 0 {
		t.Error("row must be removed regardless of file state")
	}
}

func TestDeletePhotoNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doJSON(t, http.MethodDelete, "/api/photos/9999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Photo not found." {
		t.Errorf("message = %q", msg)
	}
}

func TestDeletePhotoBadID(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doJSON(t, http.MethodDelete, "/api/photos/abc", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReorderPhotos(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doUpload(t, token, map[string]string{"title": "P"}, []uploadFile{
		{name: "1.jpg", content: "a"},
		{name: "2.jpg", content: "b"},
		{name: "3.jpg", content: "c"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d", rec.Code)
	}
	photos := ts.listPhotos(t)
	id1, id2, id3 := photos[0].ID, photos[1].ID, photos[2].ID

	reorder := ts.doJSON(t, http.MethodPost, "/api/photos/order", token,
		ReorderRequest{Order: []int64{id3, id1, id2}})
	if reorder.Code != http.StatusOK {
		t.Fatalf("reorder status = %d, body %s", reorder.Code, reorder.Body.String())
	}
	if msg := decodeMessage(t, reorder); msg != "Gallery order updated successfully!" {
		t.Errorf("message = %q", msg)
	}

	got := ts.listPhotos(t)
	wantIDs := []int64{id3, id1, id2}
	for i, p := range got {
		if p.ID != wantIDs[i] {
			t.Errorf("position %d holds id %d, want %d", i, p.ID, wantIDs[i])
		}
	}
}

func TestReorderRequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.doJSON(t, http.MethodPost, "/api/photos/order", "",
		ReorderRequest{Order: []int64{1}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without token", rec.Code)
	}
}

func TestReorderRejectsEmptyOrder(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.adminToken(t)

	rec := ts.doJSON(t, http.MethodPost, "/api/photos/order", token,
		map[string]interface{}{"order": []int64{}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty order", rec.Code)
	}
}
