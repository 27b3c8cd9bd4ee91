// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/auth"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/config"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/database"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/models"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/storage"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "saif@9852"
)

// testServer bundles everything a handler test needs.
type testServer struct {
	router http.Handler
	db     *database.DB
	files  *storage.FileStore
	jwt    *auth.JWTManager
	cfg    *config.Config
}

// setupTestServer builds a full router over an in-memory database, a
// temp-dir file store and a seeded admin credential.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        3000,
			WebRoot:     t.TempDir(),
			CORSOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Path:         ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Storage: config.StorageConfig{
			ImageDir:       t.TempDir(),
			MaxUploadFiles: 100,
			MaxUploadBytes: 32 << 20,
		},
		Security: config.SecurityConfig{
			AdminUsername:     "admin",
			JWTSecret:         testSecret,
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
		},
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	if _, err := db.EnsureAdmin(context.Background(), "admin", hash); err != nil {
		t.Fatalf("failed to seed admin credential: %v", err)
	}

	files, err := storage.New(cfg.Storage.ImageDir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("failed to create JWT manager: %v", err)
	}

	handler := NewHandler(db, files, cfg, jwtManager)
	router := NewRouter(handler, jwtManager, cfg).Setup()

	return &testServer{
		router: router,
		db:     db,
		files:  files,
		jwt:    jwtManager,
		cfg:    cfg,
	}
}

// adminToken issues a valid session token for the seeded admin.
func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken("admin")
	if err != nil {
		t.Fatalf("failed to generate admin token: %v", err)
	}
	return token
}

// doJSON performs a JSON request against the router, with optional token.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// uploadFile is one file in a multipart upload request.
type uploadFile struct {
	name    string
	content string
}

// doUpload performs a multipart POST /api/upload.
func (ts *testServer) doUpload(t *testing.T, token string, fields map[string]string, files []uploadFile) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %q: %v", key, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("photos", f.name)
		if err != nil {
			t.Fatalf("failed to create form file %q: %v", f.name, err)
		}
		if _, err := part.Write([]byte(f.content)); err != nil {
			t.Fatalf("failed to write form file %q: %v", f.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// listPhotos fetches and decodes GET /api/photos.
func (ts *testServer) listPhotos(t *testing.T) []models.Photo {
	t.Helper()

	rec := ts.doJSON(t, http.MethodGet, "/api/photos", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/photos status = %d, body %s", rec.Code, rec.Body.String())
	}

	var photos []models.Photo
	if err := json.Unmarshal(rec.Body.Bytes(), &photos); err != nil {
		t.Fatalf("failed to decode photo list: %v", err)
	}
	return photos
}

// decodeMessage extracts the "message" field from a response body.
func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	msg, _ := body["message"].(string)
	return msg
}
