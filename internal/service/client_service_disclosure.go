// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/models"
)

// secretDisclosure implements SecretDisclosure.
//
// gen changes on every Bind, Release and Hide; a reveal response is applied
// only if gen did not change while it was in flight.
type secretDisclosure struct {
	adapter adapter.ServerAdapter
	session SessionManager
	window  time.Duration
	now     func() time.Time
	logger  *logger.Logger

	mu       sync.Mutex
	gen      uint64
	itemID   string
	held     *models.VaultItemSecret
	copiedAt time.Time
}

// NewSecretDisclosure returns a SecretDisclosure whose exposure indicator
// stays on for window after a copy. The held secret itself is kept until
// the editing context ends.
func NewSecretDisclosure(serverAdapter adapter.ServerAdapter, session SessionManager, window time.Duration, logger *logger.Logger) SecretDisclosure {
	d := &secretDisclosure{
		adapter: serverAdapter,
		session: session,
		window:  window,
		now:     time.Now,
		logger:  logger,
	}

	session.Subscribe(func(state models.SessionState) {
		if state != models.SessionAuthenticated {
			d.Release()
		}
	})

	return d
}

func (d *secretDisclosure) Bind(itemID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.itemID = itemID
	d.dropLocked()
}

func (d *secretDisclosure) Release() {
	d.Bind("")
}

func (d *secretDisclosure) Reveal(ctx context.Context, itemID string) (string, error) {
	d.mu.Lock()
	if itemID == "" || itemID != d.itemID {
		d.mu.Unlock()
		return "", ErrNotInEditingContext
	}
	gen := d.gen
	d.mu.Unlock()

	if err := d.session.Authorize(ctx); err != nil {
		return "", err
	}

	secret, err := d.adapter.RevealItem(ctx, itemID)

	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		d.logger.Debug().Str("item_id", itemID).Msg("late reveal response discarded")
		return "", ErrStaleResponse
	}
	if err != nil {
		d.mu.Unlock()
		mapped := mapAdapterError("reveal", err)
		if errors.Is(mapped, ErrAuthorizationLost) {
			d.session.Invalidate(ctx)
		}
		return "", mapped
	}
	d.dropLocked()
	d.held = &secret
	d.mu.Unlock()

	return secret.Password, nil
}

func (d *secretDisclosure) Secret(itemID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held == nil || d.held.ID != itemID {
		return "", false
	}
	return d.held.Password, true
}

func (d *secretDisclosure) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.dropLocked()
}

func (d *secretDisclosure) Copy(sink ClipboardWriter) error {
	d.mu.Lock()
	if d.held == nil {
		d.mu.Unlock()
		return ErrNoSecretHeld
	}
	password, gen := d.held.Password, d.gen
	d.mu.Unlock()

	if err := sink.WriteAll(password); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	d.mu.Lock()
	if gen == d.gen && d.held != nil {
		d.copiedAt = d.now()
	}
	d.mu.Unlock()

	return nil
}

func (d *secretDisclosure) Exposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held == nil || d.copiedAt.IsZero() {
		return false
	}
	return d.now().Sub(d.copiedAt) < d.window
}

func (d *secretDisclosure) dropLocked() {
	d.held = nil
	d.copiedAt = time.Time{}
}
