// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
)

// Field names accepted by [VaultItemValidator.Validate].
const (
	FieldAccountName = "account_name"
	FieldURL         = "url"
	FieldLogin       = "login"
	FieldPassword    = "password"
	FieldUsername    = "username"
	FieldUserID      = "user_id"
	FieldChanges     = "changes"
)

// Column limits of the vault schema.
const (
	MaxAccountNameLen = 255
	MaxURLLen         = 2048
	MaxLoginLen       = 255
	MaxUsernameLen    = 50
)

// VaultItemValidator validates vault item payloads, editor drafts and
// login credentials.
type VaultItemValidator struct{}

// NewVaultItemValidator returns a [Validator] for vault inputs.
func NewVaultItemValidator() Validator {
	return &VaultItemValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms
// are both accepted.
//
// Supported types:
//   - models.CreateItemRequest
//   - models.UpdateItemRequest
//   - models.ItemDraft (create rules unless fields are given)
//   - models.Credentials
//   - models.VaultQuery
func (v *VaultItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateItemRequest:
		return v.validateCreate(value, fields...)
	case *models.CreateItemRequest:
		return v.validateCreate(*value, fields...)

	case models.UpdateItemRequest:
		return v.validateUpdate(value, fields...)
	case *models.UpdateItemRequest:
		return v.validateUpdate(*value, fields...)

	case models.ItemDraft:
		return v.validateDraft(value, fields...)
	case *models.ItemDraft:
		return v.validateDraft(*value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.VaultQuery:
		return v.validateQuery(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultItemValidator) validateCreate(req models.CreateItemRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountName, FieldURL, FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAccountName:
			err = required(f, req.AccountName, MaxAccountNameLen)
		case FieldURL:
			err = optional(f, req.URL, MaxURLLen)
		case FieldLogin:
			err = optional(f, req.Login, MaxLoginLen)
		case FieldPassword:
			if req.Password == "" {
				err = fieldErr(f, ErrRequired)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateUpdate checks only the fields present in the request. An absent
// password is valid and means "keep".
func (v *VaultItemValidator) validateUpdate(req models.UpdateItemRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChanges, FieldAccountName, FieldURL, FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldChanges:
			if !req.HasChanges() {
				err = ErrNoFieldsToUpdate
			}
		case FieldAccountName:
			if req.AccountName != nil {
				err = required(f, *req.AccountName, MaxAccountNameLen)
			}
		case FieldURL:
			err = optional(f, req.URL, MaxURLLen)
		case FieldLogin:
			err = optional(f, req.Login, MaxLoginLen)
		case FieldPassword:
			if req.Password != nil && *req.Password == "" {
				err = fieldErr(f, ErrRequired)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateDraft applies create rules by default. Callers editing an
// existing item pass the field list without FieldPassword, since a blank
// password there means Unchanged.
func (v *VaultItemValidator) validateDraft(d models.ItemDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountName, FieldURL, FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAccountName:
			err = required(f, d.AccountName, MaxAccountNameLen)
		case FieldURL:
			err = maxLen(f, strings.TrimSpace(d.URL), MaxURLLen)
		case FieldLogin:
			err = maxLen(f, strings.TrimSpace(d.Login), MaxLoginLen)
		case FieldPassword:
			if pw, ok := d.Password.Value(); !ok || pw == "" {
				err = fieldErr(f, ErrRequired)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *VaultItemValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = required(f, c.Username, MaxUsernameLen)
		case FieldPassword:
			if c.Password == "" {
				err = fieldErr(f, ErrRequired)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *VaultItemValidator) validateQuery(q models.VaultQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if !utils.IsUUID(q.UserID) {
				return ErrInvalidUserID
			}
		case FieldAccountName:
			if err := maxLen(f, q.Text, MaxAccountNameLen); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func required(field, value string, limit int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fieldErr(field, ErrRequired)
	}
	return maxLen(field, value, limit)
}

func optional(field string, value *string, limit int) error {
	if value == nil {
		return nil
	}
	return maxLen(field, strings.TrimSpace(*value), limit)
}

func maxLen(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fieldErr(field, ErrTooLong)
	}
	return nil
}
