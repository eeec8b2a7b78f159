// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/models"
)

// vaultDirectory implements VaultDirectory. issued counts List calls; a
// response is applied only if no newer call was issued meanwhile.
type vaultDirectory struct {
	adapter adapter.ServerAdapter
	session SessionManager
	logger  *logger.Logger

	mu     sync.Mutex
	issued uint64
	query  string
	items  []models.VaultItemSummary
}

// NewVaultDirectory returns a VaultDirectory that empties itself whenever
// the session leaves Authenticated.
func NewVaultDirectory(serverAdapter adapter.ServerAdapter, session SessionManager, logger *logger.Logger) VaultDirectory {
	d := &vaultDirectory{
		adapter: serverAdapter,
		session: session,
		logger:  logger,
	}

	session.Subscribe(func(state models.SessionState) {
		if state != models.SessionAuthenticated {
			d.Reset()
		}
	})

	return d
}

func (d *vaultDirectory) List(ctx context.Context, query string) ([]models.VaultItemSummary, error) {
	d.mu.Lock()
	d.issued++
	seq := d.issued
	d.query = query
	d.mu.Unlock()

	if err := d.session.Authorize(ctx); err != nil {
		return nil, err
	}

	items, err := d.adapter.ListItems(ctx, query)

	d.mu.Lock()
	if seq != d.issued {
		d.mu.Unlock()
		d.logger.Debug().Str("query", query).Msg("stale list response discarded")
		return nil, ErrStaleResponse
	}
	if err != nil {
		d.mu.Unlock()
		mapped := mapAdapterError("list", err)
		if errors.Is(mapped, ErrAuthorizationLost) {
			d.session.Invalidate(ctx)
		}
		return nil, mapped
	}
	d.items = slices.Clone(items)
	d.mu.Unlock()

	return slices.Clone(items), nil
}

func (d *vaultDirectory) Refresh(ctx context.Context) ([]models.VaultItemSummary, error) {
	return d.List(ctx, d.Query())
}

func (d *vaultDirectory) Items() []models.VaultItemSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.items)
}

func (d *vaultDirectory) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

func (d *vaultDirectory) Find(itemID string) (models.VaultItemSummary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, item := range d.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return models.VaultItemSummary{}, false
}

func (d *vaultDirectory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.issued++
	d.query = ""
	d.items = nil
}
