// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/passly/internal/validators"
	"github.com/MKhiriev/passly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: VaultService
// ─────────────────────────────────────────────

type mockVaultService struct {
	calls int

	listFn   func(ctx context.Context, q models.VaultQuery) ([]models.VaultItemSummary, error)
	createFn func(ctx context.Context, userID string, req models.CreateItemRequest) (models.VaultItemSummary, error)
	updateFn func(ctx context.Context, userID, itemID string, req models.UpdateItemRequest) (models.VaultItemSummary, error)
}

func (m *mockVaultService) ListItems(ctx context.Context, q models.VaultQuery) ([]models.VaultItemSummary, error) {
	m.calls++
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return nil, nil
}

func (m *mockVaultService) GetItem(context.Context, string, string) (models.VaultItemSummary, error) {
	m.calls++
	return models.VaultItemSummary{}, nil
}

func (m *mockVaultService) RevealItem(context.Context, string, string) (models.VaultItemSecret, error) {
	m.calls++
	return models.VaultItemSecret{}, nil
}

func (m *mockVaultService) CreateItem(ctx context.Context, userID string, req models.CreateItemRequest) (models.VaultItemSummary, error) {
	m.calls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return models.VaultItemSummary{}, nil
}

func (m *mockVaultService) UpdateItem(ctx context.Context, userID, itemID string, req models.UpdateItemRequest) (models.VaultItemSummary, error) {
	m.calls++
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, itemID, req)
	}
	return models.VaultItemSummary{}, nil
}

func (m *mockVaultService) DeleteItem(context.Context, string, string) error {
	m.calls++
	return nil
}

func newValidated(inner *mockVaultService) VaultService {
	return NewVaultValidationService().Wrap(inner)
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestVaultValidation_ListItems(t *testing.T) {
	inner := &mockVaultService{}
	svc := newValidated(inner)

	_, err := svc.ListItems(context.Background(), models.VaultQuery{UserID: testUserID, Text: "git"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	_, err = svc.ListItems(context.Background(), models.VaultQuery{UserID: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrInvalidUserID)

	_, err = svc.ListItems(context.Background(), models.VaultQuery{UserID: testUserID, Text: strings.Repeat("a", 256)})
	assert.ErrorIs(t, err, validators.ErrTooLong)
	assert.Equal(t, 1, inner.calls, "invalid input must not reach the inner service")
}

func TestVaultValidation_CreateItem_RequiresPassword(t *testing.T) {
	inner := &mockVaultService{}
	svc := newValidated(inner)

	_, err := svc.CreateItem(context.Background(), testUserID, models.CreateItemRequest{AccountName: "GitHub"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrRequired)
	var fe *validators.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, validators.FieldPassword, fe.Field)
	assert.Zero(t, inner.calls)
}

func TestVaultValidation_CreateItem_RequiresAccountName(t *testing.T) {
	svc := newValidated(&mockVaultService{})

	_, err := svc.CreateItem(context.Background(), testUserID, models.CreateItemRequest{AccountName: "  ", Password: "x"})

	var fe *validators.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, validators.FieldAccountName, fe.Field)
}

func TestVaultValidation_CreateItem_Passes(t *testing.T) {
	inner := &mockVaultService{
		createFn: func(_ context.Context, userID string, req models.CreateItemRequest) (models.VaultItemSummary, error) {
			return models.VaultItemSummary{ID: testItemID, AccountName: req.AccountName}, nil
		},
	}
	svc := newValidated(inner)

	got, err := svc.CreateItem(context.Background(), testUserID, models.CreateItemRequest{AccountName: "GitHub", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, "GitHub", got.AccountName)
}

func TestVaultValidation_UpdateItem(t *testing.T) {
	inner := &mockVaultService{}
	svc := newValidated(inner)

	_, err := svc.UpdateItem(context.Background(), testUserID, testItemID, models.UpdateItemRequest{})
	assert.ErrorIs(t, err, validators.ErrNoFieldsToUpdate)

	_, err = svc.UpdateItem(context.Background(), testUserID, testItemID, models.UpdateItemRequest{Password: strPtr("")})
	assert.ErrorIs(t, err, validators.ErrRequired)

	_, err = svc.UpdateItem(context.Background(), testUserID, testItemID, models.UpdateItemRequest{Login: strPtr("dev2@x.com")})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestVaultValidation_OwnerChecked(t *testing.T) {
	inner := &mockVaultService{}
	svc := newValidated(inner)
	ctx := context.Background()

	_, err := svc.GetItem(ctx, "", testItemID)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	_, err = svc.RevealItem(ctx, "", testItemID)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.DeleteItem(ctx, "", testItemID), ErrInvalidDataProvided)
	assert.Zero(t, inner.calls)

	_, err = svc.RevealItem(ctx, testUserID, testItemID)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}
