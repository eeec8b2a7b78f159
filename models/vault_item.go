// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VaultItem is the server-side storage shape of a single credential record.
//
// The password is kept only in sealed form: PasswordEncrypted and
// PasswordNonce are base64-encoded AES-GCM ciphertext and nonce produced
// with a key derived for UserID.
type VaultItem struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	AccountName       string    `json:"account_name"`
	URL               *string   `json:"url"`
	Login             *string   `json:"login"`
	PasswordEncrypted string    `json:"-"`
	PasswordNonce     string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultItem model.
func (v VaultItem) TableName() string {
	return "vault_items"
}

// Summary returns the redacted view of the item.
func (v VaultItem) Summary() VaultItemSummary {
	return VaultItemSummary{
		ID:             v.ID,
		AccountName:    v.AccountName,
		URL:            v.URL,
		Login:          v.Login,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		PasswordMasked: true,
	}
}

// VaultItemSummary is the redacted projection of a vault item. It never
// carries the password in any form and is the only shape returned by list
// and get operations.
type VaultItemSummary struct {
	ID          string    `json:"id"`
	AccountName string    `json:"account_name"`
	URL         *string   `json:"url"`
	Login       *string   `json:"login"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// PasswordMasked is true for every redacted view.
	PasswordMasked bool `json:"password_masked"`
}

// VaultItemSecret is a summary plus the plaintext password. It is returned
// only by the explicit reveal operation.
type VaultItemSecret struct {
	VaultItemSummary
	Password string `json:"password"`
}

// CreateItemRequest is the payload for creating a vault item.
type CreateItemRequest struct {
	AccountName string  `json:"account_name"`
	URL         *string `json:"url,omitempty"`
	Login       *string `json:"login,omitempty"`
	Password    string  `json:"password"`
}

// UpdateItemRequest is a partial update. A nil field is left untouched;
// in particular a nil Password keeps the stored secret as is.
type UpdateItemRequest struct {
	AccountName *string `json:"account_name,omitempty"`
	URL         *string `json:"url,omitempty"`
	Login       *string `json:"login,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// HasChanges reports whether the request touches at least one field.
func (r UpdateItemRequest) HasChanges() bool {
	return r.AccountName != nil || r.URL != nil || r.Login != nil || r.Password != nil
}

// VaultQuery is a list filter. An empty Text matches every item.
type VaultQuery struct {
	UserID string
	Text   string
}
