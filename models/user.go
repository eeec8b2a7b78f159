// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account that owns vault items.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the server-assigned identifier (UUID string).
	UserID string `json:"id"`

	// Username is the unique login of the account.
	Username string `json:"username"`

	// Password carries the plaintext password only on its way into
	// authentication. It is never persisted nor echoed back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the argon2id PHC string stored by the server.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last account change.
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of u without any credential material.
func (u User) Public() User {
	return User{
		UserID:    u.UserID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// Credentials is the username/password pair exchanged for a session
// credential by the authenticate operation.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccessToken is the body returned by a successful authentication.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
