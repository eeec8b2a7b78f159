// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repositories. Match them with [errors.Is].
var (
	// ErrUsernameAlreadyExists is returned when a user with the same
	// username is already stored.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNameAlreadyExists is returned when the owner already has an
	// item with the same account name.
	ErrAccountNameAlreadyExists = errors.New("account name already exists")

	// ErrItemNotFound is returned when an item does not exist or belongs to
	// another user. The two cases are indistinguishable on purpose.
	ErrItemNotFound = errors.New("item not found")

	// ErrStorageUnavailable wraps failures classified as retryable
	// (connection loss, serialization failure and similar).
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")

	// ErrCredentialNotFound is returned by the client credential store when
	// no session credential is persisted.
	ErrCredentialNotFound = errors.New("no persisted credential")
)

// Low-level failures wrapped around driver errors.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")
	ErrExecutingQuery   = errors.New("error executing sql query")
	ErrScanningRow      = errors.New("failed to scan row")
)
