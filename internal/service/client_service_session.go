// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/validators"
	"github.com/MKhiriev/passly/models"
)

// resolution is one Resolving period. done is closed when it settles.
type resolution struct {
	done  chan struct{}
	state models.SessionState
}

// sessionManager implements SessionManager.
//
// Every transition bumps epoch. A resolve or login that finishes under an
// older epoch is discarded, so a logout issued mid-flight always wins.
type sessionManager struct {
	adapter     adapter.ServerAdapter
	credentials store.CredentialStore
	validator   validators.Validator
	logger      *logger.Logger

	mu        sync.Mutex
	state     models.SessionState
	identity  models.User
	epoch     uint64
	pending   *resolution
	active    bool
	listeners []func(models.SessionState)
}

// NewSessionManager returns a SessionManager in the Resolving state. The
// caller is expected to call Resolve right away.
func NewSessionManager(serverAdapter adapter.ServerAdapter, credentials store.CredentialStore, logger *logger.Logger) SessionManager {
	return &sessionManager{
		adapter:     serverAdapter,
		credentials: credentials,
		validator:   validators.NewVaultItemValidator(),
		logger:      logger,
		state:       models.SessionResolving,
		pending:     &resolution{done: make(chan struct{})},
	}
}

func (s *sessionManager) Resolve(ctx context.Context) models.SessionState {
	epoch, p, started := s.begin(false)
	if !started {
		if p == nil {
			return s.State()
		}
		return s.wait(ctx, p)
	}

	token, err := s.credentials.LoadCredential(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCredentialNotFound) {
			s.logger.Err(err).Msg("loading persisted credential failed")
		}
		return s.finish(epoch, nil)
	}

	state, _ := s.resolveToken(ctx, epoch, token)
	return state
}

func (s *sessionManager) Login(ctx context.Context, credentials models.Credentials) error {
	if err := s.validator.Validate(ctx, credentials); err != nil {
		return mapValidationError(err)
	}

	epoch, _, _ := s.begin(true)

	token, err := s.adapter.Authenticate(ctx, credentials)
	if err != nil {
		s.logger.Info().Err(err).Str("username", credentials.Username).Msg("login rejected")
		s.finish(epoch, nil)
		return mapLoginError(err)
	}

	if saveErr := s.credentials.SaveCredential(ctx, token); saveErr != nil {
		// the session still works, it just will not survive a restart
		s.logger.Err(saveErr).Msg("persisting credential failed")
	}

	state, err := s.resolveToken(ctx, epoch, token)
	if state == models.SessionAuthenticated {
		return nil
	}

	// a login that did not settle must not leave a credential for the next
	// start; a rejected one was already cleared by resolveToken
	if s.current(epoch) && !errors.Is(err, adapter.ErrUnauthorized) {
		if clearErr := s.credentials.ClearCredential(ctx); clearErr != nil {
			s.logger.Err(clearErr).Msg("clearing unresolved credential failed")
		}
	}
	if err == nil || errors.Is(err, adapter.ErrUnauthorized) {
		return &AuthenticationError{Reason: "the server did not accept the new session", Err: err}
	}
	return mapLoginError(err)
}

func (s *sessionManager) Logout(ctx context.Context) {
	if s.adapter.Token() != "" {
		if err := s.adapter.InvalidateSession(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("server-side logout failed, dropping session locally")
		}
	}

	if err := s.credentials.ClearCredential(ctx); err != nil {
		s.logger.Err(err).Msg("clearing persisted credential failed")
	}

	s.forceAnonymous()
}

func (s *sessionManager) Invalidate(ctx context.Context) {
	if s.State() != models.SessionAuthenticated {
		return
	}

	s.logger.Info().Msg("authorization lost")
	if err := s.credentials.ClearCredential(ctx); err != nil {
		s.logger.Err(err).Msg("clearing persisted credential failed")
	}

	s.forceAnonymous()
}

func (s *sessionManager) Authorize(ctx context.Context) error {
	for {
		s.mu.Lock()
		state, p := s.state, s.pending
		s.mu.Unlock()

		switch {
		case state == models.SessionAuthenticated:
			return nil
		case state != models.SessionResolving || p == nil:
			return ErrAuthorizationLost
		}

		select {
		case <-p.done:
		case <-ctx.Done():
			return &TransientError{Op: "waiting for session", Err: ctx.Err()}
		}
	}
}

func (s *sessionManager) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *sessionManager) Identity() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.state == models.SessionAuthenticated
}

func (s *sessionManager) Subscribe(fn func(models.SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// begin enters Resolving. Unless force is set, a resolution already in
// flight is joined instead of started, and an authenticated session is
// left as is (the returned resolution is nil then).
func (s *sessionManager) begin(force bool) (uint64, *resolution, bool) {
	s.mu.Lock()
	if !force {
		switch {
		case s.active:
			p := s.pending
			s.mu.Unlock()
			return 0, p, false
		case s.state == models.SessionAuthenticated:
			s.mu.Unlock()
			return 0, nil, false
		}
	}

	s.epoch++
	epoch := s.epoch
	if s.pending == nil {
		s.pending = &resolution{done: make(chan struct{})}
	}
	p := s.pending
	s.active = true
	changed := s.state != models.SessionResolving
	s.state = models.SessionResolving
	s.identity = models.User{}
	s.mu.Unlock()

	if changed {
		s.notify(models.SessionResolving)
	}
	return epoch, p, true
}

// resolveToken settles the resolution with the identity behind token. The
// whoami error, if any, is returned alongside the settled state.
func (s *sessionManager) resolveToken(ctx context.Context, epoch uint64, token string) (models.SessionState, error) {
	if token == "" {
		return s.finish(epoch, nil), nil
	}

	s.mu.Lock()
	if s.epoch != epoch {
		state := s.state
		s.mu.Unlock()
		return state, nil
	}
	s.adapter.SetToken(token)
	s.mu.Unlock()

	user, err := s.adapter.WhoAmI(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("credential did not resolve")
		if errors.Is(err, adapter.ErrUnauthorized) && s.current(epoch) {
			if clearErr := s.credentials.ClearCredential(ctx); clearErr != nil {
				s.logger.Err(clearErr).Msg("clearing rejected credential failed")
			}
		}
		return s.finish(epoch, nil), err
	}

	return s.finish(epoch, &user), nil
}

// finish settles the resolution started under epoch. A nil user means
// Anonymous.
func (s *sessionManager) finish(epoch uint64, user *models.User) models.SessionState {
	s.mu.Lock()
	if s.epoch != epoch {
		state := s.state
		s.mu.Unlock()
		return state
	}

	if user != nil {
		s.state = models.SessionAuthenticated
		s.identity = *user
	} else {
		s.state = models.SessionAnonymous
		s.identity = models.User{}
		s.adapter.SetToken("")
	}
	state := s.state
	s.settleLocked()
	s.mu.Unlock()

	s.logger.Debug().Stringer("state", state).Msg("session resolved")
	s.notify(state)
	return state
}

func (s *sessionManager) forceAnonymous() {
	s.mu.Lock()
	s.epoch++
	s.adapter.SetToken("")
	changed := s.state != models.SessionAnonymous
	s.state = models.SessionAnonymous
	s.identity = models.User{}
	s.settleLocked()
	s.mu.Unlock()

	if changed {
		s.notify(models.SessionAnonymous)
	}
}

func (s *sessionManager) settleLocked() {
	s.active = false
	if p := s.pending; p != nil {
		p.state = s.state
		close(p.done)
		s.pending = nil
	}
}

func (s *sessionManager) current(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch == epoch
}

func (s *sessionManager) wait(ctx context.Context, p *resolution) models.SessionState {
	select {
	case <-p.done:
		return p.state
	case <-ctx.Done():
		return s.State()
	}
}

func (s *sessionManager) notify(state models.SessionState) {
	s.mu.Lock()
	listeners := make([]func(models.SessionState), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
