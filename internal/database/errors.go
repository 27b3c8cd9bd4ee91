// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package database

import "errors"

var (
	// ErrPhotoNotFound is returned when no photo row matches the given id.
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrUserNotFound is returned when no credential row matches the
	// given username.
	ErrUserNotFound = errors.New("user not found")
)
