// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/store"
)

// ClientServices groups the terminal client's controllers. They share one
// SessionManager and reset themselves whenever it leaves Authenticated.
type ClientServices struct {
	Session    SessionManager
	Directory  VaultDirectory
	Disclosure SecretDisclosure
	Editor     ItemEditor
}

func NewClientServices(serverAdapter adapter.ServerAdapter, credentials store.CredentialStore, cfg config.Client, log *logger.Logger) *ClientServices {
	session := NewSessionManager(serverAdapter, credentials, log.WithComponent("session"))
	directory := NewVaultDirectory(serverAdapter, session, log.WithComponent("directory"))
	disclosure := NewSecretDisclosure(serverAdapter, session, cfg.CopyWindow, log.WithComponent("disclosure"))

	return &ClientServices{
		Session:    session,
		Directory:  directory,
		Disclosure: disclosure,
		Editor:     NewItemEditor(serverAdapter, session, directory, disclosure, log.WithComponent("editor")),
	}
}
