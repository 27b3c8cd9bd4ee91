// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

// Package api implements the REST endpoints and routing for the gallery.
//
// GET /api/photos returns a bare JSON array; every other endpoint
// answers {"message": "..."} with the status code carrying the outcome.
// The frontend depends on these exact shapes.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/logging"
)

// messageResponse is the {"message": ...} body most endpoints answer with.
type messageResponse struct {
	Message string `json:"message"`
}

// loginResponse extends the message body with the session token.
type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// writeJSON writes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().
			Err(err).
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Msg("Failed to encode JSON response")
	}
}

// writeMessage writes a {"message": ...} body with the given status.
func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, messageResponse{Message: message})
}

// serverError logs the underlying error with the request ID and answers
// with a generic message so no store or filesystem detail leaks out.
func serverError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.Error().
		Err(err).
		Str("request_id", logging.RequestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Msg("Request failed")
	writeMessage(w, r, http.StatusInternalServerError, message)
}
