// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configWith(httpAddr, grpcAddr string) config.StructuredConfig {
	return config.StructuredConfig{
		Server: config.Server{HTTPAddress: httpAddr, GRPCAddress: grpcAddr},
	}
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		httpAddr string
		grpcAddr string
		wantHTTP bool
		wantGRPC bool
	}{
		{name: "both", httpAddr: ":8080", grpcAddr: ":9090", wantHTTP: true, wantGRPC: true},
		{name: "only HTTP", httpAddr: ":8080", wantHTTP: true},
		{name: "only gRPC", grpcAddr: ":9090", wantGRPC: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(&service.Services{}, nil, configWith(tt.httpAddr, tt.grpcAddr), logger.Nop())

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_NoAddresses(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, nil, configWith("", ""), logger.Nop())

	assert.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}
