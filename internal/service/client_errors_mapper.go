// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/validators"
)

// mapAdapterError translates the adapter's transport error into the client
// error taxonomy.
func mapAdapterError(op string, err error) error {
	if err == nil {
		return nil
	}

	detail := extractDetail(err)

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrAuthorizationLost, err)

	case errors.Is(err, adapter.ErrConflict):
		return &ValidationError{Field: validators.FieldAccountName, Reason: detailOr(detail, app.MsgAccountNameAlreadyExists), Err: err}

	case errors.Is(err, adapter.ErrBadRequest):
		return &ValidationError{Field: fieldFromDetail(detail), Reason: detailOr(detail, app.MsgInvalidDataProvided), Err: err}
	}

	return &TransientError{Op: op, Err: err}
}

// mapLoginError maps a failed credential exchange. Every failure is an
// AuthenticationError; only the reason differs.
func mapLoginError(err error) error {
	if err == nil {
		return nil
	}

	detail := extractDetail(err)

	switch {
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrBadRequest):
		return &AuthenticationError{Reason: detailOr(detail, app.MsgIncorrectUsernameOrPassword), Err: err}
	case errors.Is(err, adapter.ErrTransport):
		return &AuthenticationError{Reason: "server is unreachable", Err: err}
	default:
		return &AuthenticationError{Reason: "server error, try again later", Err: err}
	}
}

func extractDetail(err error) string {
	var se *adapter.StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

func detailOr(detail, fallback string) string {
	if detail == "" {
		return fallback
	}
	return detail
}

func fieldFromDetail(detail string) string {
	switch detail {
	case app.MsgPasswordRequired:
		return validators.FieldPassword
	case app.MsgAccountNameAlreadyExists:
		return validators.FieldAccountName
	}
	return ""
}

// mapValidationError converts a local validator failure.
func mapValidationError(err error) error {
	var fe *validators.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Reason: fe.Err.Error(), Err: err}
	}
	return &ValidationError{Reason: err.Error(), Err: err}
}
