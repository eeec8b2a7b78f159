// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	db  *DB
	ids *utils.UUIDGenerator
	log *logger.Logger
}

// NewUserRepository constructs a [UserRepository] on db.
func NewUserRepository(db *DB, log *logger.Logger) UserRepository {
	log.Debug().Msg("creating user repository")
	return &userRepository{
		db:  db,
		ids: utils.NewUUIDGenerator(),
		log: log,
	}
}

// CreateUser inserts user with a fresh UUIDv7 and returns the stored row.
// A duplicate username yields [ErrUsernameAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	err := r.db.QueryRowContext(ctx, createUser, r.ids.Generate(), user.Username, user.PasswordHash).
		Scan(&created.UserID, &created.Username, &created.PasswordHash, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("error creating user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrUsernameAlreadyExists
		}
		return models.User{}, r.db.classify(err, ErrExecutingQuery)
	}

	return created, nil
}

// FindUserByUsername returns the user with username or [ErrUserNotFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, findUserByUsername, username)
}

// FindUserByID returns the user with userID or [ErrUserNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (models.User, error) {
	log := logger.FromContext(ctx)

	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case postgresError(err) == pgerrcode.InvalidTextRepresentation:
		// malformed uuid in the lookup key
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Msg("error finding user")
		return models.User{}, r.db.classify(err, ErrExecutingQuery)
	}

	return u, nil
}

// CountUsers returns the number of stored accounts.
func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).Msg("error counting users")
		return 0, r.db.classify(err, ErrExecutingQuery)
	}
	return n, nil
}
