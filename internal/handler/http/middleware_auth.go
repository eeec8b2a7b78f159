// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] (signature, issuer, expiry, revocation)
// and stores the caller's id under [utils.UserIDCtxKey] and the parsed
// token under [utils.TokenCtxKey] before delegating to the next handler.
//
// Every rejection is answered with 401 and the same detail, so a caller
// cannot tell an expired token from a revoked one.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Info().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, app.MsgCouldNotValidateCredentials, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Info().Err(err).Send()
			utils.WriteError(w, app.MsgCouldNotValidateCredentials, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeServiceError(w, r, err, "token rejected")
			return
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		ctx = context.WithValue(ctx, utils.TokenCtxKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
