// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/crypto"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
)

type idGenerator interface {
	Generate() string
}

// authService is the concrete implementation of AuthService.
// It verifies argon2id password hashes, issues HS256 JWTs carrying a ULID
// jti, and consults the revocation list on every parse.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenRepository keeps revoked token ids until they expire.
	tokenRepository store.TokenRepository

	hasher crypto.PasswordHasher

	// tokenIDs issues the "jti" claim.
	tokenIDs idGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	initialUsername string
	initialPassword string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(users store.UserRepository, tokens store.TokenRepository, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  users,
		tokenRepository: tokens,
		hasher:          hasher,
		tokenIDs:        utils.NewULIDGenerator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		initialUsername: cfg.InitialUsername,
		initialPassword: cfg.InitialPassword,
		logger:          logger,
	}
}

// Login authenticates an existing user.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Username or Password is empty.
//   - ErrWrongCredentials if the user does not exist or the password does
//     not match. The two cases are not distinguished.
//   - A wrapped storage error if the lookup fails for another reason.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if credentials.Username == "" || credentials.Password == "" {
		log.Error().Str("username", credentials.Username).Msg("invalid credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Info().Str("username", credentials.Username).Msg("login for unknown user")
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	ok, err := a.hasher.Verify(credentials.Password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Str("id", foundUser.UserID).Msg("stored password hash is unusable")
		return models.User{}, ErrWrongCredentials
	}
	if !ok {
		log.Info().Str("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// Returns the token model on success or ErrTokenCreationFailed wrapping the
// cause.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   a.tokenIssuer,
		UserID:   user.UserID,
		TokenID:  a.tokenIDs.Generate(),
		Duration: a.tokenDuration,
		SignKey:  a.tokenSignKey,
	})
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid. A revoked token yields ErrTokenRevoked. Storage
// failures of the revocation lookup are returned wrapped so callers can tell
// them apart from a bad token.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	revoked, err := a.tokenRepository.IsTokenRevoked(ctx, token.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("revocation lookup failed")
		return models.Token{}, fmt.Errorf("revocation lookup failed: %w", err)
	}
	if revoked {
		return models.Token{}, ErrTokenRevoked
	}

	return token, nil
}

// Me returns the public view of the account behind userID.
func (a *authService) Me(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user.Public(), nil
}

// Logout adds the token's jti to the revocation list. Revoking an already
// revoked token is not an error.
func (a *authService) Logout(ctx context.Context, token models.Token) error {
	var expiresAt time.Time
	if token.ExpiresAt != nil {
		expiresAt = token.ExpiresAt.Time
	} else {
		expiresAt = time.Now().Add(a.tokenDuration)
	}

	if err := a.tokenRepository.RevokeToken(ctx, token.ID, token.UserID, expiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", token.UserID).Msg("token revocation failed")
		return fmt.Errorf("token revocation failed: %w", err)
	}

	return nil
}

// EnsureInitialUser creates the configured account when the users table is
// empty. It is a no-op otherwise.
func (a *authService) EnsureInitialUser(ctx context.Context) error {
	count, err := a.userRepository.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if a.initialUsername == "" || a.initialPassword == "" {
		return ErrInitialUserNotConfigured
	}

	hash, err := a.hasher.Hash(a.initialPassword)
	if err != nil {
		return fmt.Errorf("hashing initial password failed: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{Username: a.initialUsername, PasswordHash: hash})
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		// another instance seeded concurrently
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating initial user failed: %w", err)
	}

	a.logger.Info().Str("username", created.Username).Msg("initial user created")
	return nil
}
