// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingReporter remembers every reported status.
type recordingReporter struct {
	mu      sync.Mutex
	reports []bool
}

func (r *recordingReporter) SetServing(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, ok)
}

func (r *recordingReporter) all() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.reports...)
}

// countingWorker counts Run calls and returns when ctx ends.
type countingWorker struct {
	mu   sync.Mutex
	runs int
}

func (w *countingWorker) Run(ctx context.Context) {
	w.mu.Lock()
	w.runs++
	w.mu.Unlock()
	<-ctx.Done()
}

func TestNewWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)
	pinger := mock.NewMockPinger(ctrl)
	cfg := config.Workers{PurgeInterval: time.Minute, HealthInterval: time.Second}

	assert.Len(t, NewWorkers(tokens, pinger, &recordingReporter{}, cfg, logger.Nop()).workers, 2)
	assert.Len(t, NewWorkers(tokens, pinger, nil, cfg, logger.Nop()).workers, 1)
	assert.Empty(t, NewWorkers(tokens, pinger, nil, config.Workers{}, logger.Nop()).workers)
}

func TestWorkers_Run_StartsAllAndWaits(t *testing.T) {
	w1, w2 := &countingWorker{}, &countingWorker{}
	ws := &Workers{workers: []Worker{w1, w2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		w1.mu.Lock()
		defer w1.mu.Unlock()
		w2.mu.Lock()
		defer w2.mu.Unlock()
		return w1.runs == 1 && w2.runs == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	ws.Run(context.Background())
}

func TestTokenPurger_PurgesWithCurrentTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tokens.EXPECT().PurgeExpiredTokens(gomock.Any(), now).Return(int64(3), nil)

	p := newTokenPurger(tokens, time.Minute, logger.Nop())
	p.now = func() time.Time { return now }
	p.purge(context.Background())
}

func TestTokenPurger_RunsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	var mu sync.Mutex
	tokens.EXPECT().PurgeExpiredTokens(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if calls == 3 {
				cancel()
			}
			return 0, errors.New("db down")
		}).MinTimes(3)

	done := make(chan struct{})
	go func() {
		newTokenPurger(tokens, time.Millisecond, logger.Nop()).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("purger did not stop")
	}
}

func TestHealthProbe_ReportsPingOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	pinger := mock.NewMockPinger(ctrl)
	reporter := &recordingReporter{}

	gomock.InOrder(
		pinger.EXPECT().PingContext(gomock.Any()).Return(nil),
		pinger.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused")),
		pinger.EXPECT().PingContext(gomock.Any()).Return(nil),
	)

	p := newHealthProbe(pinger, reporter, time.Second, logger.Nop())
	p.probe(context.Background())
	p.probe(context.Background())
	p.probe(context.Background())

	assert.Equal(t, []bool{true, false, true}, reporter.all())
}

func TestHealthProbe_CancelledProbeIsNotReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	pinger := mock.NewMockPinger(ctrl)
	reporter := &recordingReporter{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pinger.EXPECT().PingContext(gomock.Any()).Return(context.Canceled)

	newHealthProbe(pinger, reporter, time.Second, logger.Nop()).probe(ctx)

	assert.Empty(t, reporter.all())
}
