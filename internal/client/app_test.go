// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUI struct {
	err error
	ran bool
}

func (u *fakeUI) Run(ctx context.Context) error {
	u.ran = true
	return u.err
}

func newTestApp(t *testing.T, ui UI) (*App, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	return &App{ui: ui, db: db, logger: logger.Nop()}, mock
}

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name    string
		uiErr   error
		wantErr bool
	}{
		{name: "clean exit"},
		{name: "cancelled", uiErr: context.Canceled},
		{name: "ui failure", uiErr: errors.New("no tty"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := &fakeUI{err: tt.uiErr}
			app, mock := newTestApp(t, ui)

			err := app.Run()

			assert.True(t, ui.ran)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.uiErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApp_ImplementsClient(t *testing.T) {
	var _ Client = (*App)(nil)
}
