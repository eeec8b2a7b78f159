// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides helpers shared by the server and the client:
// typed context keys, HMAC signing, JSON response writing, JWT issuing
// and parsing, and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so they cannot collide with
// keys defined by other packages.
type contextKey string

// String implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey holds the authenticated user identifier (UUID string).
	UserIDCtxKey = contextKey("userID")

	// TokenCtxKey holds the validated session token of the request.
	TokenCtxKey = contextKey("token")
)

// GetUserIDFromContext retrieves the user identifier from ctx.
// ok is false when the value is missing, empty or of an unexpected type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}
