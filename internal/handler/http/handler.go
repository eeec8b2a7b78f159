// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/utils"
)

// Handler is the root HTTP transport handler. One instance is created at
// startup and shared by every request.
type Handler struct {
	services *service.Services
	pinger   store.Pinger
	signer   *utils.Signer
	metrics  *metrics
	timeout  time.Duration

	logger *logger.Logger
}

// NewHandler builds a Handler. pinger may be nil, in which case /health
// reports healthy without probing storage.
func NewHandler(services *service.Services, pinger store.Pinger, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		pinger:   pinger,
		signer:   utils.NewSigner(cfg.App.HashKey),
		metrics:  newMetrics(),
		timeout:  cfg.Server.RequestTimeout,
		logger:   logger,
	}
}
