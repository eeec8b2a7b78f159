// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/tui"
	"github.com/MKhiriev/passly/models"
)

// UI is the interactive front end driven by the App.
type UI interface {
	Run(ctx context.Context) error
}

// App owns the client process: the local session store, the services and
// the terminal UI on top of them.
type App struct {
	ui     UI
	db     *sql.DB
	logger *logger.Logger
}

// NewApp wires the server adapter, the persisted session store and the
// client services into a runnable application.
func NewApp(cfg *config.StructuredConfig, build models.BuildInfo, log *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Client.SessionDSN, log)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	services := service.NewClientServices(serverAdapter, store.NewCredentialStore(db), cfg.Client, log)

	return &App{
		ui:     tui.New(services, cfg.Client, build, log),
		db:     db,
		logger: log,
	}, nil
}

// Run blocks until the UI exits or the process receives SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	a.logger.Info().Msg("client started")
	runErr := a.ui.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if err := a.db.Close(); err != nil {
		a.logger.Err(err).Msg("closing session store")
	}
	a.logger.Info().Msg("client stopped")

	return runErr
}
