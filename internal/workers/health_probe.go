// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
)

// healthProbe pings the database and reports the result. Only changes of
// state are logged.
type healthProbe struct {
	pinger   store.Pinger
	reporter HealthReporter
	interval time.Duration
	logger   *logger.Logger

	serving *bool
}

func newHealthProbe(pinger store.Pinger, reporter HealthReporter, interval time.Duration, logger *logger.Logger) *healthProbe {
	return &healthProbe{
		pinger:   pinger,
		reporter: reporter,
		interval: interval,
		logger:   logger,
	}
}

func (p *healthProbe) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.probe(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *healthProbe) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	err := p.pinger.PingContext(pingCtx)
	if ctx.Err() != nil {
		return
	}

	ok := err == nil
	p.reporter.SetServing(ok)

	if p.serving != nil && *p.serving == ok {
		return
	}
	p.serving = &ok

	if ok {
		p.logger.Info().Msg("storage reachable")
	} else {
		p.logger.Warn().Err(err).Msg("storage unreachable")
	}
}
