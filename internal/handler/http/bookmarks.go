// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bookmarks/internal/app"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
)

func (h *Handler) listBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	bookmarks, err := h.services.BookmarkService.ListBookmarks(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, bookmarks, http.StatusOK)
}

func (h *Handler) createBookmark(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var input models.BookmarkInput
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		log.Err(err).Str("func", "*Handler.createBookmark").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.BookmarkService.CreateBookmark(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateBookmark(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var input models.BookmarkInput
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		log.Err(err).Str("func", "*Handler.updateBookmark").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	update := models.BookmarkUpdate{
		ID:            chi.URLParam(r, "id"),
		OwnerID:       userID,
		BookmarkInput: input,
	}

	updated, err := h.services.BookmarkService.UpdateBookmark(r.Context(), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	if err := h.services.BookmarkService.DeleteBookmark(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
