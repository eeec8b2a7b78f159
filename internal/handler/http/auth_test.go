// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var alice = models.User{UserID: testUserID, Username: "alice", PasswordHash: "$argon2id$secret"}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	creds := models.Credentials{Username: "alice", Password: "pw"}
	f.auth.EXPECT().Login(gomock.Any(), creds).Return(alice, nil)
	f.auth.EXPECT().CreateToken(gomock.Any(), alice).Return(testToken(), nil)

	rec := f.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+goodToken, rec.Header().Get("Authorization"))

	var body models.AccessToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, goodToken, body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginErr   error
		tokenErr   error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "invalid JSON",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgInvalidJSON,
		},
		{
			name:       "empty fields",
			body:       `{}`,
			loginErr:   service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgInvalidDataProvided,
		},
		{
			name:       "wrong credentials",
			body:       `{"username":"alice","password":"nope"}`,
			loginErr:   service.ErrWrongCredentials,
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgIncorrectUsernameOrPassword,
		},
		{
			name:       "storage down",
			body:       `{"username":"alice","password":"pw"}`,
			loginErr:   fmt.Errorf("find user: %w", store.ErrStorageUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: app.MsgServiceUnavailable,
		},
		{
			name:       "token creation failed",
			body:       `{"username":"alice","password":"pw"}`,
			tokenErr:   service.ErrTokenCreationFailed,
			wantStatus: http.StatusInternalServerError,
			wantDetail: app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.name != "invalid JSON" {
				f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(alice, tt.loginErr)
			}
			if tt.tokenErr != nil {
				f.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(models.Token{}, tt.tokenErr)
			}

			rec := f.do(http.MethodPost, "/api/auth/login", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
			assert.Empty(t, rec.Header().Get("Authorization"))
		})
	}
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_ReturnsPublicProfile(t *testing.T) {
	f := newFixture(t).authorized()
	f.auth.EXPECT().Me(gomock.Any(), testUserID).Return(alice, nil)

	rec := f.authed(http.MethodGet, "/api/auth/me", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "argon2id")
	assert.NotContains(t, rec.Body.String(), "password")

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, testUserID, user.UserID)
	assert.Equal(t, "alice", user.Username)
}

func TestMe_DeletedUserIsUnauthorized(t *testing.T) {
	f := newFixture(t).authorized()
	f.auth.EXPECT().Me(gomock.Any(), testUserID).Return(models.User{}, store.ErrUserNotFound)

	rec := f.authed(http.MethodGet, "/api/auth/me", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, app.MsgCouldNotValidateCredentials, detailOf(t, rec))
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout_RevokesPresentedToken(t *testing.T) {
	f := newFixture(t).authorized()
	f.auth.EXPECT().Logout(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, token models.Token) error {
		assert.Equal(t, testToken().ID, token.ID)
		return nil
	})

	rec := f.authed(http.MethodPost, "/api/auth/logout", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var msg app.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, app.MsgLoggedOut, msg.Message)
}

func TestLogout_StorageFailure(t *testing.T) {
	f := newFixture(t).authorized()
	f.auth.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	rec := f.authed(http.MethodPost, "/api/auth/logout", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
