// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the server's periodic background jobs.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// HealthReporter receives the outcome of every storage probe.
type HealthReporter interface {
	SetServing(ok bool)
}
