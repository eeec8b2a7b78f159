// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/passly/internal/crypto"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/models"
)

// vaultService seals passwords on write and opens them only in RevealItem.
// Every other method works on the redacted projection.
type vaultService struct {
	vaultRepository store.VaultRepository
	cipher          crypto.SecretCipher

	logger *logger.Logger
}

// NewVaultService returns the bare VaultService. Callers usually wrap it with
// NewVaultValidationService.
func NewVaultService(vaultRepository store.VaultRepository, cipher crypto.SecretCipher, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		cipher:          cipher,
		logger:          logger,
	}
}

func (v *vaultService) ListItems(ctx context.Context, query models.VaultQuery) ([]models.VaultItemSummary, error) {
	query.Text = strings.TrimSpace(query.Text)

	items, err := v.vaultRepository.ListItems(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vault items failed: %w", err)
	}

	summaries := make([]models.VaultItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, item.Summary())
	}

	return summaries, nil
}

func (v *vaultService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItemSummary, error) {
	item, err := v.vaultRepository.GetItem(ctx, userID, itemID)
	if err != nil {
		return models.VaultItemSummary{}, fmt.Errorf("getting vault item failed: %w", err)
	}

	return item.Summary(), nil
}

// RevealItem loads the item of userID and decrypts its password. This is the
// only path through which a plaintext password leaves the service.
func (v *vaultService) RevealItem(ctx context.Context, userID, itemID string) (models.VaultItemSecret, error) {
	log := logger.FromContext(ctx)

	item, err := v.vaultRepository.GetItem(ctx, userID, itemID)
	if err != nil {
		return models.VaultItemSecret{}, fmt.Errorf("getting vault item failed: %w", err)
	}

	password, err := v.cipher.Open(userID, item.PasswordEncrypted, item.PasswordNonce)
	if err != nil {
		log.Err(err).Str("item_id", itemID).Msg("sealed password cannot be opened")
		return models.VaultItemSecret{}, fmt.Errorf("%w: %w", ErrSecretUnavailable, err)
	}

	log.Info().Str("item_id", itemID).Msg("password revealed")

	summary := item.Summary()
	summary.PasswordMasked = false
	return models.VaultItemSecret{VaultItemSummary: summary, Password: password}, nil
}

func (v *vaultService) CreateItem(ctx context.Context, userID string, req models.CreateItemRequest) (models.VaultItemSummary, error) {
	ciphertext, nonce, err := v.cipher.Seal(userID, req.Password)
	if err != nil {
		return models.VaultItemSummary{}, fmt.Errorf("sealing password failed: %w", err)
	}

	created, err := v.vaultRepository.CreateItem(ctx, models.VaultItem{
		UserID:            userID,
		AccountName:       strings.TrimSpace(req.AccountName),
		URL:               trimmed(req.URL),
		Login:             trimmed(req.Login),
		PasswordEncrypted: ciphertext,
		PasswordNonce:     nonce,
	})
	if err != nil {
		return models.VaultItemSummary{}, fmt.Errorf("creating vault item failed: %w", err)
	}

	return created.Summary(), nil
}

// UpdateItem applies the non-nil fields of req. The stored password is
// re-sealed only when req.Password is present; otherwise the ciphertext is
// not touched at all.
func (v *vaultService) UpdateItem(ctx context.Context, userID, itemID string, req models.UpdateItemRequest) (models.VaultItemSummary, error) {
	patch := store.ItemPatch{
		URL:   trimmed(req.URL),
		Login: trimmed(req.Login),
	}
	if req.AccountName != nil {
		name := strings.TrimSpace(*req.AccountName)
		patch.AccountName = &name
	}
	// an explicitly blanked optional field clears the column
	if req.URL != nil && patch.URL == nil {
		patch.URL = new(string)
	}
	if req.Login != nil && patch.Login == nil {
		patch.Login = new(string)
	}

	if req.Password != nil {
		ciphertext, nonce, err := v.cipher.Seal(userID, *req.Password)
		if err != nil {
			return models.VaultItemSummary{}, fmt.Errorf("sealing password failed: %w", err)
		}
		patch.PasswordEncrypted = &ciphertext
		patch.PasswordNonce = &nonce
	}

	updated, err := v.vaultRepository.UpdateItem(ctx, userID, itemID, patch)
	if err != nil {
		return models.VaultItemSummary{}, fmt.Errorf("updating vault item failed: %w", err)
	}

	return updated.Summary(), nil
}

func (v *vaultService) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := v.vaultRepository.DeleteItem(ctx, userID, itemID); err != nil {
		return fmt.Errorf("deleting vault item failed: %w", err)
	}

	v.logger.Debug().Str("item_id", itemID).Msg("vault item deleted")
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
