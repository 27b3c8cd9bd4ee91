// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package api

import (
	"errors"
	"net/http"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/auth"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/database"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/logging"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/metrics"
)

// Login verifies the submitted credentials against the stored hash and
// issues a session token. Unknown username and wrong password produce
// the identical response; the unknown-user path still burns a bcrypt
// comparison so the two cannot be told apart by timing either.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Username and password are required.")
		return
	}

	cred, err := h.db.GetCredential(r.Context(), req.Username)
	if errors.Is(err, database.ErrUserNotFound) {
		auth.CheckDummy(req.Password)
		metrics.RecordLogin(false)
		writeMessage(w, r, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if err != nil {
		serverError(w, r, err, "Server error.")
		return
	}

	if !auth.CheckPassword(cred.PasswordHash, req.Password) {
		metrics.RecordLogin(false)
		writeMessage(w, r, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := h.jwtManager.GenerateToken(cred.Username)
	if err != nil {
		serverError(w, r, err, "Server error.")
		return
	}

	metrics.RecordLogin(true)
	logging.Info().Str("username", cred.Username).Msg("Admin logged in")
	writeJSON(w, r, http.StatusOK, loginResponse{
		Message: "Login successful.",
		Token:   token,
	})
}

// ChangePassword verifies the current password of the fixed admin
// account before persisting a hash of the new one. No password strength
// rules are applied.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Current and new password are required.")
		return
	}

	adminUser := h.cfg.Security.AdminUsername
	cred, err := h.db.GetCredential(r.Context(), adminUser)
	if errors.Is(err, database.ErrUserNotFound) {
		writeMessage(w, r, http.StatusNotFound, "Admin user not found.")
		return
	}
	if err != nil {
		serverError(w, r, err, "Server error.")
		return
	}

	if !auth.CheckPassword(cred.PasswordHash, req.CurrentPassword) {
		writeMessage(w, r, http.StatusUnauthorized, "Current password is incorrect.")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		serverError(w, r, err, "Server error.")
		return
	}
	if err := h.db.UpdatePasswordHash(r.Context(), adminUser, newHash); err != nil {
		serverError(w, r, err, "Server error.")
		return
	}

	logging.Info().Str("username", adminUser).Msg("Admin password changed")
	writeMessage(w, r, http.StatusOK, "Password changed successfully!")
}
