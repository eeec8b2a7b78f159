// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. A known
// path requested with an unsupported method is answered with 404 instead
// of 405, so callers cannot probe which routes exist.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			// the method is registered after all; let the router serve it
			router.ServeHTTP(w, r)
			return
		}

		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("method not allowed, answering 404")
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}
