// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// UUIDGenerator issues time-ordered UUIDv7 identifiers for stored rows.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7, falling back to a random UUIDv4 if the
// clock-based generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// ULIDGenerator issues lexicographically sortable token identifiers (jti).
type ULIDGenerator struct {
	now func() time.Time
}

// NewULIDGenerator returns a ULIDGenerator bound to the wall clock.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{now: time.Now}
}

// Generate returns a new ULID string. Entropy comes from crypto/rand.
func (g *ULIDGenerator) Generate() string {
	id, err := ulid.New(ulid.Timestamp(g.now()), rand.Reader)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}

// IsUUID reports whether s is a well-formed UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
