// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// PasswordField is the password slot of an editor draft. It is either
// Unchanged (keep whatever the backend stores) or Set to a concrete value.
// The zero value is Unchanged.
type PasswordField struct {
	set   bool
	value string
}

// Unchanged returns a PasswordField that leaves the stored password intact.
func Unchanged() PasswordField {
	return PasswordField{}
}

// SetPassword returns a PasswordField carrying value.
func SetPassword(value string) PasswordField {
	return PasswordField{set: true, value: value}
}

// PasswordFromInput maps raw editor input to a PasswordField: only empty
// input means Unchanged. Whitespace is a legitimate password and is kept
// verbatim.
func PasswordFromInput(input string) PasswordField {
	if input == "" {
		return Unchanged()
	}
	return SetPassword(input)
}

// IsSet reports whether the field carries a new password.
func (p PasswordField) IsSet() bool {
	return p.set
}

// Value returns the new password and whether one is set.
func (p PasswordField) Value() (string, bool) {
	return p.value, p.set
}

// String never prints the password.
func (p PasswordField) String() string {
	if p.set {
		return "Set(***)"
	}
	return "Unchanged"
}

// ItemDraft is the editable form state of an item.
type ItemDraft struct {
	AccountName string
	URL         string
	Login       string
	Password    PasswordField
}

// ToCreateRequest converts the draft to a create payload. Empty optional
// fields are sent as absent.
func (d ItemDraft) ToCreateRequest() CreateItemRequest {
	password, _ := d.Password.Value()
	return CreateItemRequest{
		AccountName: strings.TrimSpace(d.AccountName),
		URL:         optional(d.URL),
		Login:       optional(d.Login),
		Password:    password,
	}
}

// ToUpdateRequest converts the draft to a partial update payload. The
// password is included only when it was Set.
func (d ItemDraft) ToUpdateRequest() UpdateItemRequest {
	name := strings.TrimSpace(d.AccountName)
	url := strings.TrimSpace(d.URL)
	login := strings.TrimSpace(d.Login)
	req := UpdateItemRequest{
		AccountName: &name,
		URL:         &url,
		Login:       &login,
	}
	if password, ok := d.Password.Value(); ok {
		req.Password = &password
	}
	return req
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// DraftFromSummary prefills a draft from an existing item. The password
// starts out Unchanged.
func DraftFromSummary(s VaultItemSummary) ItemDraft {
	d := ItemDraft{AccountName: s.AccountName, Password: Unchanged()}
	if s.URL != nil {
		d.URL = *s.URL
	}
	if s.Login != nil {
		d.Login = *s.Login
	}
	return d
}
