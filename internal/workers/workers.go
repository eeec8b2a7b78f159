// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
)

// Workers is the set of background jobs started together.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the token purger and, when reporter is not nil, the
// storage health probe. A zero interval disables the matching worker.
func NewWorkers(tokens store.TokenRepository, pinger store.Pinger, reporter HealthReporter, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.PurgeInterval > 0 {
		w.workers = append(w.workers, newTokenPurger(tokens, cfg.PurgeInterval, logger.WithComponent("token_purger")))
	}
	if reporter != nil && cfg.HealthInterval > 0 {
		w.workers = append(w.workers, newHealthProbe(pinger, reporter, cfg.HealthInterval, logger.WithComponent("health_probe")))
	}

	return w
}

// Run starts every worker and blocks until all of them return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() { worker.Run(ctx) })
	}
	wg.Wait()
}
