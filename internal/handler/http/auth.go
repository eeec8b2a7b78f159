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
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeServiceError(w, r, err, "login rejected")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeServiceError(w, r, err, "creation of token failed")
		return
	}

	log.Debug().Str("user_id", user.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	utils.WriteJSON(w, models.AccessToken{AccessToken: token.SignedString, TokenType: "bearer"}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "me")
		return
	}

	user, err := h.services.AuthService.Me(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, "looking up current user failed")
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := ctx.Value(utils.TokenCtxKey).(models.Token)
	if !ok {
		writeServiceError(w, r, ErrNoUserInContext, "logout")
		return
	}

	if err := h.services.AuthService.Logout(ctx, token); err != nil {
		writeServiceError(w, r, err, "revoking token failed")
		return
	}

	utils.WriteJSON(w, app.Message{Message: app.MsgLoggedOut}, http.StatusOK)
}
