// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHTTPMethod_UnsupportedMethodIsNotFound(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPatch, "/api/vault/items/" + testItemID},
		{http.MethodDelete, "/api/vault/items"},
		{http.MethodPut, "/api/auth/login"},
		{http.MethodPost, "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			f := newFixture(t).authorized()

			rec := f.authed(tt.method, tt.path, "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, http.StatusText(http.StatusNotFound), detailOf(t, rec))
		})
	}
}
