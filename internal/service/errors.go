// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("incorrect username or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenRevoked            = errors.New("token is revoked")

	ErrSecretUnavailable        = errors.New("stored secret cannot be opened")
	ErrInitialUserNotConfigured = errors.New("initial username or password is not configured")
	ErrVersionIsNotSpecified    = errors.New("app version is not specified")
)
