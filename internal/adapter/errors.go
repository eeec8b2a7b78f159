// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

// Sentinels matched by HTTP status.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// ErrTransport wraps failures that happen before a response is received
// (dial errors, timeouts, cancelled contexts).
var ErrTransport = errors.New("transport failure")

// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	// Detail is the "detail" field of the JSON error body, or the raw body
	// when it is not JSON.
	Detail string

	kind error
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("http %d: %v", e.StatusCode, e.kind)
	}
	return fmt.Sprintf("http %d: %v: %s", e.StatusCode, e.kind, e.Detail)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

// NewStatusError builds the error returned for a non-2xx response with the
// given status code and detail.
func NewStatusError(code int, detail string) *StatusError {
	return &StatusError{StatusCode: code, Detail: detail, kind: statusKind(code)}
}
