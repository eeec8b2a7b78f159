// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
)

// tokenPurger drops revocation records whose tokens have expired anyway.
type tokenPurger struct {
	tokens   store.TokenRepository
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func newTokenPurger(tokens store.TokenRepository, interval time.Duration, logger *logger.Logger) *tokenPurger {
	return &tokenPurger{
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (p *tokenPurger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.purge(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *tokenPurger) purge(ctx context.Context) {
	removed, err := p.tokens.PurgeExpiredTokens(ctx, p.now())
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Msg("purging expired tokens failed")
		}
		return
	}
	if removed > 0 {
		p.logger.Info().Int64("removed", removed).Msg("expired token revocations purged")
	}
}
