// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/database"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/logging"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/metrics"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/models"
)

// ListPhotos returns every photo sorted ascending by display order, as a
// bare JSON array. This is the one endpoint the public gallery consumes.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.db.ListPhotos(r.Context())
	if err != nil {
		serverError(w, r, err, "Error reading photo data.")
		return
	}
	writeJSON(w, r, http.StatusOK, photos)
}

// UploadPhotos accepts a multipart batch of up to the configured number
// of files under the "photos" field, with optional shared title, date and
// description. Each file becomes one photo row; display orders continue
// from the current maximum. A batch of more than one file gets " (1)",
// " (2)", ... appended to the titles in submission order.
func (h *Handler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.Storage.MaxUploadBytes); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid upload request.")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		writeMessage(w, r, http.StatusBadRequest, "No files were uploaded.")
		return
	}
	if len(files) > h.cfg.Storage.MaxUploadFiles {
		writeMessage(w, r, http.StatusBadRequest,
			fmt.Sprintf("Too many files: limit is %d per upload.", h.cfg.Storage.MaxUploadFiles))
		return
	}

	title := r.FormValue("title")
	date := r.FormValue("date")
	description := r.FormValue("description")

	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid date: use YYYY-MM-DD.")
		return
	}

	photos := make([]*models.Photo, 0, len(files))
	stored := make([]string, 0, len(files))
	for i, hdr := range files {
		name, err := h.savePhotoFile(hdr)
		if err != nil {
			h.discardStored(stored)
			serverError(w, r, err, "Error saving photo data.")
			return
		}
		stored = append(stored, name)

		photoTitle := title
		if photoTitle == "" {
			photoTitle = hdr.Filename
		}
		if len(files) > 1 {
			photoTitle = fmt.Sprintf("%s (%d)", photoTitle, i+1)
		}

		photos = append(photos, &models.Photo{
			Src:         "img/" + name,
			Title:       photoTitle,
			Description: description,
			Date:        date,
		})
		metrics.UploadBytes.Observe(float64(hdr.Size))
	}

	if err := h.db.CreatePhotos(r.Context(), photos); err != nil {
		// The transaction rolled back; the files must not stay behind
		// as orphans the gallery never links to.
		h.discardStored(stored)
		serverError(w, r, err, "Error saving photo data.")
		return
	}

	metrics.PhotosUploaded.Add(float64(len(photos)))
	logging.Info().Int("count", len(photos)).Msg("Photos uploaded")
	writeMessage(w, r, http.StatusCreated, "Photos uploaded successfully!")
}

// DeletePhoto removes the photo row and its backing file. File removal
// failure is logged and the row is removed regardless.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid photo id.")
		return
	}

	photo, err := h.db.GetPhoto(r.Context(), id)
	if errors.Is(err, database.ErrPhotoNotFound) {
		writeMessage(w, r, http.StatusNotFound, "Photo not found.")
		return
	}
	if err != nil {
		serverError(w, r, err, "Server error.")
		return
	}

	if err := h.files.Remove(path.Base(photo.Src)); err != nil {
		logging.Error().Err(err).Int64("photo_id", id).Str("src", photo.Src).
			Msg("Error deleting file")
	}

	if err := h.db.DeletePhoto(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrPhotoNotFound) {
			writeMessage(w, r, http.StatusNotFound, "Photo not found.")
			return
		}
		serverError(w, r, err, "Server error.")
		return
	}

	metrics.PhotosDeleted.Inc()
	logging.Info().Int64("photo_id", id).Msg("Photo deleted")
	writeMessage(w, r, http.StatusOK, "Photo deleted successfully!")
}

// ReorderPhotos commits the submitted id sequence: each id receives its
// 1-based position as the new display order.
func (h *Handler) ReorderPhotos(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Photo order is required.")
		return
	}

	if err := h.db.ReorderPhotos(r.Context(), req.Order); err != nil {
		serverError(w, r, err, "Error saving new order.")
		return
	}

	metrics.ReorderOperations.Inc()
	logging.Info().Int("count", len(req.Order)).Msg("Gallery order updated")
	writeMessage(w, r, http.StatusOK, "Gallery order updated successfully!")
}

// savePhotoFile streams one multipart file into the file store.
func (h *Handler) savePhotoFile(hdr *multipart.FileHeader) (string, error) {
	f, err := hdr.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %q: %w", hdr.Filename, err)
	}
	defer func() { _ = f.Close() }()

	name, err := h.files.Save(hdr.Filename, f)
	if err != nil {
		return "", err
	}
	return name, nil
}

// discardStored removes files written before an upload failed.
func (h *Handler) discardStored(names []string) {
	for _, name := range names {
		if err := h.files.Remove(name); err != nil {
			logging.Warn().Err(err).Str("file", name).Msg("Failed to discard stored upload")
		}
	}
}
