// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/utils"
)

// hashHeader carries the hex HMAC-SHA256 of the request body.
const hashHeader = "HashSHA256"

// verifyHash checks request integrity when a hash key is configured.
// Requests with a body must carry a matching HashSHA256 header; requests
// without one pass through. With no key configured it is a no-op.
func (h *Handler) verifyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Enabled() || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Msg("failed to read request body")
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if len(body) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !h.signer.Verify(body, r.Header.Get(hashHeader)) {
			log.Warn().Str("uri", r.RequestURI).Msg("hashes are not equal")
			utils.WriteError(w, app.MsgHashMismatch, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
