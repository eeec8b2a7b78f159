// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/passly/models"
)

func renderBuildInfo(info models.BuildInfo) string {
	return helpStyle.Render("passly " + info.Version + " (" + info.Commit + ", " + info.Date + ")")
}
