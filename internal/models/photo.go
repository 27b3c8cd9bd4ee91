// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

// Package models defines the persisted domain types.
package models

import "time"

// Photo is one gallery image and its metadata.
//
// Order is the display position; the gallery and the admin list both sort
// ascending by it. Values need not be unique, ties fall back to id order.
type Photo struct {
	ID          int64  `json:"id"`
	Src         string `json:"src"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Order       int    `json:"order"`

	// UploadDate is the record creation time. Kept out of the list
	// response, which carries only display fields.
	UploadDate time.Time `json:"-"`
}

// Credential is the single admin login record.
type Credential struct {
	Username     string
	PasswordHash string
}

// DateLayout is the storage layout for Photo.Date.
const DateLayout = "2006-01-02"
