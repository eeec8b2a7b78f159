// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, middleware.Recoverer)
	if h.timeout > 0 {
		router.Use(middleware.Timeout(h.timeout))
	}
	router.Use(withGunzip, middleware.Compress(5, "application/json", "text/plain"))

	router.Get("/health", h.health)
	router.Handle("/metrics", h.metrics.handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(h.verifyHash)

		// routes without authorization
		r.Get("/version", h.getServerVersion)
		r.Post("/auth/login", h.login)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/auth/me", h.me)
			r.Post("/auth/logout", h.logout)

			r.Route("/vault/items", func(r chi.Router) {
				r.Get("/", h.listItems)
				r.Post("/", h.createItem)
				r.Get("/{id}", h.getItem)
				r.Put("/{id}", h.updateItem)
				r.Delete("/{id}", h.deleteItem)
				r.Post("/{id}/reveal", h.revealItem)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
