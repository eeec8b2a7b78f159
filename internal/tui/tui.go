// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the client. It renders what the
// client services produce and turns key presses into service calls; it
// owns no session or vault state of its own.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs the bubbletea program over the client services.
type TUI struct {
	services  *service.ClientServices
	clipboard service.ClipboardWriter
	window    time.Duration
	build     models.BuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, cfg config.Client, build models.BuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		clipboard: systemClipboard{},
		window:    cfg.CopyWindow,
		build:     build,
		logger:    logger,
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	m := newModel(ctx, t.services, t.clipboard, t.window, t.build)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the event loop reads, and session transitions may
	// be triggered from inside it.
	t.services.Session.Subscribe(func(state models.SessionState) {
		go p.Send(sessionChangedMsg{state: state})
	})

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Msg("terminal UI stopped")
	}
	return err
}
