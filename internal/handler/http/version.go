// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/passly/internal/app"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// health reports liveness. When a pinger is configured an unreachable
// database turns it into 503.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			logger.FromRequest(r).Err(err).Msg("health check: storage unreachable")
			utils.WriteError(w, store.ErrStorageUnavailable.Error(), http.StatusServiceUnavailable)
			return
		}
	}

	utils.WriteJSON(w, models.HealthStatus{Status: app.MsgHealthy}, http.StatusOK)
}
