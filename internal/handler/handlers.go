// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/handler/grpc"
	"github.com/MKhiriev/passly/internal/handler/http"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/internal/store"
)

// Handlers holds the transport handlers enabled by the server config.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a handler per configured listen address. At least one
// address must be set.
func NewHandlers(services *service.Services, pinger store.Pinger, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, pinger, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
