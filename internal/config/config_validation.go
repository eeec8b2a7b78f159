// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/base64"
	"fmt"
)

// validateServer checks the groups the server binary depends on.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	key, err := base64.StdEncoding.DecodeString(cfg.App.VaultMasterKey)
	if err != nil || len(key) == 0 {
		return fmt.Errorf("%w: vault master key must be non-empty base64", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.PurgeInterval <= 0 || cfg.Workers.HealthInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// validateClient checks the groups the terminal client depends on.
func (cfg *StructuredConfig) validateClient() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Client.SessionDSN == "" || cfg.Client.CopyWindow <= 0 {
		return ErrInvalidClientConfigs
	}

	return nil
}
