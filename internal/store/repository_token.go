// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/passly/internal/logger"
)

type tokenRepository struct {
	db *DB
}

// NewTokenRepository constructs a [TokenRepository] on db.
func NewTokenRepository(db *DB, log *logger.Logger) TokenRepository {
	log.Debug().Msg("creating token repository")
	return &tokenRepository{db: db}
}

// RevokeToken records tokenID as revoked until expiresAt. Revoking the same
// token twice is a no-op.
func (t *tokenRepository) RevokeToken(ctx context.Context, tokenID, userID string, expiresAt time.Time) error {
	if _, err := t.db.ExecContext(ctx, revokeToken, tokenID, userID, expiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("jti", tokenID).Msg("failed to revoke token")
		return t.db.classify(err, ErrExecutingQuery)
	}
	return nil
}

func (t *tokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	if err := t.db.QueryRowContext(ctx, isTokenRevoked, tokenID).Scan(&revoked); err != nil {
		return false, t.db.classify(err, ErrExecutingQuery)
	}
	return revoked, nil
}

// PurgeExpiredTokens drops revocations whose token has expired anyway.
func (t *tokenRepository) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := t.db.ExecContext(ctx, purgeExpiredTokens, now)
	if err != nil {
		return 0, t.db.classify(err, ErrExecutingQuery)
	}
	return res.RowsAffected()
}
