// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/passly/models"
)

type resolvedMsg struct {
	state models.SessionState
}

type sessionChangedMsg struct {
	state models.SessionState
}

type loginDoneMsg struct {
	err error
}

type listDoneMsg struct {
	query string
	err   error
}

type revealDoneMsg struct {
	itemID string
	err    error
}

type savedMsg struct {
	item models.VaultItemSummary
	err  error
}

type removedMsg struct {
	accountName string
	err         error
}

type loggedOutMsg struct{}

// exposureEndedMsg re-renders once the "copied" indicator has expired.
type exposureEndedMsg struct{}
