// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthorizationLost means the backend rejected the session. The
	// session is already Anonymous when a caller sees it.
	ErrAuthorizationLost = errors.New("authorization lost, please log in again")

	// ErrStaleResponse marks a response that arrived for a superseded query
	// or a closed editing context. It was discarded.
	ErrStaleResponse = errors.New("response discarded")

	ErrEditorClosed        = errors.New("no editor is open")
	ErrNotInEditingContext = errors.New("item is not open in the editor")
	ErrNoSecretHeld        = errors.New("no revealed secret is held")
	ErrNothingToDelete     = errors.New("only an existing item can be deleted")
)

// AuthenticationError is a rejected login. Reason is safe to show the user.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ValidationError blocks a submission. Field is empty when the problem is
// not tied to one field.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransientError is a network or server failure. The previous state is
// kept and the operation may be retried by the user.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// ConfirmationRequiredError is the delete gate: the caller must ask the
// user and repeat the call with confirmation.
type ConfirmationRequiredError struct {
	ItemID      string
	AccountName string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("delete %q? confirmation required", e.AccountName)
}
