// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/service"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseErr   error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "no header",
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgCouldNotValidateCredentials,
		},
		{
			name:       "wrong scheme",
			header:     "Basic YWxpY2U6cHc=",
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgCouldNotValidateCredentials,
		},
		{
			name:       "missing token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgCouldNotValidateCredentials,
		},
		{
			name:       "expired or forged",
			header:     "Bearer bad",
			parseErr:   fmt.Errorf("%w: token has expired", service.ErrTokenIsExpiredOrInvalid),
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgCouldNotValidateCredentials,
		},
		{
			name:       "revoked",
			header:     "Bearer bad",
			parseErr:   service.ErrTokenRevoked,
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgCouldNotValidateCredentials,
		},
		{
			name:       "revocation lookup unavailable",
			header:     "Bearer bad",
			parseErr:   fmt.Errorf("revocation lookup: %w", store.ErrStorageUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: app.MsgServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.parseErr != nil {
				f.auth.EXPECT().ParseToken(gomock.Any(), "bad").Return(models.Token{}, tt.parseErr)
			}

			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Error("next handler must not run")
			})
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			f.handler.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
		})
	}
}

func TestAuth_StoresCallerInContext(t *testing.T) {
	f := newFixture(t).authorized()

	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		userID, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, testUserID, userID)

		token, ok := r.Context().Value(utils.TokenCtxKey).(models.Token)
		require.True(t, ok)
		assert.Equal(t, testToken().ID, token.ID)

		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+goodToken)
	rec := httptest.NewRecorder()

	f.handler.auth(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_ProtectsVaultRoutes(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/vault/items"},
		{http.MethodPost, "/api/vault/items"},
		{http.MethodGet, "/api/vault/items/" + testItemID},
		{http.MethodPut, "/api/vault/items/" + testItemID},
		{http.MethodDelete, "/api/vault/items/" + testItemID},
		{http.MethodPost, "/api/vault/items/" + testItemID + "/reveal"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(route.method, route.path, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
