// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/internal/validators"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []errorResponse{
	{validators.ErrNoFieldsToUpdate, http.StatusBadRequest, app.MsgNoFieldsToUpdate},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{service.ErrWrongCredentials, http.StatusUnauthorized, app.MsgIncorrectUsernameOrPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgCouldNotValidateCredentials},
	{service.ErrTokenRevoked, http.StatusUnauthorized, app.MsgCouldNotValidateCredentials},
	{store.ErrUserNotFound, http.StatusUnauthorized, app.MsgCouldNotValidateCredentials},

	{store.ErrItemNotFound, http.StatusNotFound, app.MsgItemNotFound},
	{store.ErrAccountNameAlreadyExists, http.StatusConflict, app.MsgAccountNameAlreadyExists},
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable, app.MsgServiceUnavailable},
}

// responseFromError picks the status and the "detail" message for err.
func responseFromError(err error) (int, string) {
	var fe *validators.FieldError
	if errors.As(err, &fe) && fe.Field == validators.FieldPassword && errors.Is(fe.Err, validators.ErrRequired) {
		return http.StatusBadRequest, app.MsgPasswordRequired
	}

	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeServiceError logs err and answers with its mapped status. Server
// errors are logged at error level, client errors at info.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, detail := responseFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Info().Err(err).Int("status", status).Msg(msg)
	}

	utils.WriteError(w, detail, status)
}
