// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// passly server handlers and the client adapter.
//
// All Msg* constants are human-readable message strings written into the
// "detail" field of HTTP error bodies. The client matches on some of them,
// so the wording is part of the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded body fails
	// validation (missing or oversized fields).
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgIncorrectUsernameOrPassword is returned when the supplied
	// credentials do not match any account.
	MsgIncorrectUsernameOrPassword = "Incorrect username or password"

	// MsgCouldNotValidateCredentials is returned when the bearer token is
	// missing, malformed, expired or revoked.
	MsgCouldNotValidateCredentials = "Could not validate credentials"

	// MsgItemNotFound is returned when a vault item does not exist for the
	// current user.
	MsgItemNotFound = "Item not found"

	// MsgAccountNameAlreadyExists is returned when the user already owns an
	// item with the requested account name.
	MsgAccountNameAlreadyExists = "Account name already exists"

	// MsgNoFieldsToUpdate is returned for an update that changes nothing.
	MsgNoFieldsToUpdate = "No fields to update"

	// MsgPasswordRequired is returned when a create request carries no
	// password.
	MsgPasswordRequired = "Password is required"

	// MsgHashMismatch is returned when the HashSHA256 header does not match
	// the request body.
	MsgHashMismatch = "Request hash mismatch"

	// MsgServiceUnavailable is returned when storage is temporarily
	// unreachable. The client may retry.
	MsgServiceUnavailable = "Service temporarily unavailable"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"

	// MsgLoggedOut is the message of a successful logout.
	MsgLoggedOut = "Successfully logged out"

	// MsgItemDeleted is the message of a successful delete.
	MsgItemDeleted = "Item deleted"

	// MsgHealthy is the status reported by the liveness endpoint.
	MsgHealthy = "healthy"
)

// Message is the body of acknowledgement responses.
type Message struct {
	Message string `json:"message"`
}
