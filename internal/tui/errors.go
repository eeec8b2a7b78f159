// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/passly/internal/service"
)

const (
	msgSessionEnded = "Your session has ended. Please log in again."
	msgLoggedOut    = "Logged out."
)

// humanizeError turns a client error into a line fit for the status bar.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var (
		authErr      *service.AuthenticationError
		validErr     *service.ValidationError
		transientErr *service.TransientError
	)
	switch {
	case errors.As(err, &authErr):
		return authErr.Reason
	case errors.As(err, &validErr):
		return validErr.Reason
	case errors.Is(err, service.ErrAuthorizationLost):
		return msgSessionEnded
	case errors.As(err, &transientErr):
		return "Could not " + transientErr.Op + ": " + humanizeServerUnavailableError(transientErr.Err) + ". Try again."
	}
	return err.Error()
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "server is unreachable"
	}

	return err.Error()
}
