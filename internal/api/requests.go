// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// maxJSONBody caps JSON request bodies. The reorder payload is the
// largest legitimate one and stays far below this.
const maxJSONBody = 1 << 20 // 1MB

// LoginRequest is the POST /api/login body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the POST /api/change-password body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ReorderRequest is the POST /api/photos/order body: photo ids in their
// new visual order.
type ReorderRequest struct {
	Order []int64 `json:"order" validate:"required,min=1,dive,gt=0"`
}

// validate is shared; a validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = validator.New()

// decodeJSON reads and validates a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	body := io.LimitReader(r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
