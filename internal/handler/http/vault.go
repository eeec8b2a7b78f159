// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "list items")
		return
	}

	items, err := h.services.VaultService.ListItems(ctx, models.VaultQuery{
		UserID: userID,
		Text:   r.URL.Query().Get("query"),
	})
	if err != nil {
		writeServiceError(w, r, err, "error listing vault items")
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "get item")
		return
	}

	item, err := h.services.VaultService.GetItem(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "error getting vault item")
		return
	}

	utils.WriteJSON(w, item, http.StatusOK)
}

// revealItem is the only route that answers with a plaintext password.
func (h *Handler) revealItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "reveal item")
		return
	}

	itemID := chi.URLParam(r, "id")
	secret, err := h.services.VaultService.RevealItem(ctx, userID, itemID)
	if err != nil {
		writeServiceError(w, r, err, "error revealing vault item")
		return
	}

	log.Info().Str("item_id", itemID).Msg("secret revealed")
	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, secret, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "create item")
		return
	}

	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.VaultService.CreateItem(ctx, userID, req)
	if err != nil {
		writeServiceError(w, r, err, "error creating vault item")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "update item")
		return
	}

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.VaultService.UpdateItem(ctx, userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "error updating vault item")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "delete item")
		return
	}

	if err := h.services.VaultService.DeleteItem(ctx, userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "error deleting vault item")
		return
	}

	utils.WriteJSON(w, app.Message{Message: app.MsgItemDeleted}, http.StatusOK)
}
