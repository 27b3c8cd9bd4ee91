// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package api

import (
	"net/http"
	"time"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/auth"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/config"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/database"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/storage"
)

// Handler carries the dependencies of the API endpoints.
//
// Handler methods are split across files:
//   - handlers_auth.go: login and change-password
//   - handlers_photos.go: list, upload, delete, reorder
type Handler struct {
	db         *database.DB
	files      *storage.FileStore
	cfg        *config.Config
	jwtManager *auth.JWTManager
	startTime  time.Time
}

// NewHandler creates the API handler.
func NewHandler(db *database.DB, files *storage.FileStore, cfg *config.Config, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		db:         db,
		files:      files,
		cfg:        cfg,
		jwtManager: jwtManager,
		startTime:  time.Now(),
	}
}

// healthResponse is the GET /healthz body.
type healthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Healthz reports liveness and store reachability.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		serverError(w, r, err, "Database unavailable.")
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}
