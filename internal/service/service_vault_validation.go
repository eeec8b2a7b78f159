// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/passly/internal/validators"
	"github.com/MKhiriev/passly/models"
)

// VaultValidationService rejects malformed input before it reaches the
// wrapped VaultService. Every rejection wraps ErrInvalidDataProvided and the
// validator error, so callers can inspect the offending field.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultItemValidator(),
	}
}

func (v *VaultValidationService) ListItems(ctx context.Context, query models.VaultQuery) ([]models.VaultItemSummary, error) {
	if err := v.validator.Validate(ctx, query, validators.FieldUserID, validators.FieldAccountName); err != nil {
		return nil, invalid(err)
	}

	return v.inner.ListItems(ctx, query)
}

func (v *VaultValidationService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItemSummary, error) {
	if err := v.validateOwner(ctx, userID); err != nil {
		return models.VaultItemSummary{}, err
	}

	return v.inner.GetItem(ctx, userID, itemID)
}

func (v *VaultValidationService) RevealItem(ctx context.Context, userID, itemID string) (models.VaultItemSecret, error) {
	if err := v.validateOwner(ctx, userID); err != nil {
		return models.VaultItemSecret{}, err
	}

	return v.inner.RevealItem(ctx, userID, itemID)
}

func (v *VaultValidationService) CreateItem(ctx context.Context, userID string, req models.CreateItemRequest) (models.VaultItemSummary, error) {
	if err := v.validateOwner(ctx, userID); err != nil {
		return models.VaultItemSummary{}, err
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.VaultItemSummary{}, invalid(err)
	}

	return v.inner.CreateItem(ctx, userID, req)
}

func (v *VaultValidationService) UpdateItem(ctx context.Context, userID, itemID string, req models.UpdateItemRequest) (models.VaultItemSummary, error) {
	if err := v.validateOwner(ctx, userID); err != nil {
		return models.VaultItemSummary{}, err
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.VaultItemSummary{}, invalid(err)
	}

	return v.inner.UpdateItem(ctx, userID, itemID, req)
}

func (v *VaultValidationService) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := v.validateOwner(ctx, userID); err != nil {
		return err
	}

	return v.inner.DeleteItem(ctx, userID, itemID)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}

func (v *VaultValidationService) validateOwner(ctx context.Context, userID string) error {
	if err := v.validator.Validate(ctx, models.VaultQuery{UserID: userID}, validators.FieldUserID); err != nil {
		return invalid(err)
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
