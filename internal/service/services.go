// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/crypto"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
)

type Services struct {
	AuthService    AuthService
	VaultService   VaultService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	cipher, err := crypto.NewSecretCipher(cfg.App.VaultMasterKey)
	if err != nil {
		return nil, fmt.Errorf("vault cipher: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewPasswordHasher(crypto.DefaultArgon2Params)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.TokenRepository, hasher, cfg.App, logger),
		VaultService:   NewVaultValidationService().Wrap(NewVaultService(storages.VaultRepository, cipher, logger)),
		AppInfoService: appInfo,
	}, nil
}
