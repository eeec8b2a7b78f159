// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
)

// appInfoService implements AppInfoService on top of static configuration.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService returns the service behind GET /api/version. The
// version comes from APP_VERSION (or its flag/JSON counterpart) with
// surrounding whitespace dropped; a blank value is rejected with
// ErrVersionIsNotSpecified.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Info().Str("version", version).Msg("serving application version")
	return &appInfoService{version: version, logger: logger}, nil
}

// GetAppVersion reports the configured version. It never blocks, so ctx is
// unused.
func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
