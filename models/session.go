// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SessionState is the client-side authentication state.
type SessionState int

const (
	// SessionResolving is the initial state while a persisted credential is
	// being checked.
	SessionResolving SessionState = iota
	// SessionAnonymous means there is no usable credential.
	SessionAnonymous
	// SessionAuthenticated means a credential has been accepted by the backend.
	SessionAuthenticated
)

// String implements [fmt.Stringer].
func (s SessionState) String() string {
	switch s {
	case SessionResolving:
		return "resolving"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// EditorMode tells whether an open editor creates a new item or edits an
// existing one.
type EditorMode int

const (
	EditorCreate EditorMode = iota + 1
	EditorEdit
)

// HealthStatus is the body of the liveness endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}
