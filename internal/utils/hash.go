// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Signer computes keyed HMAC-SHA256 digests. Hash instances are pooled
// since signing runs on every request body when integrity checks are on.
type Signer struct {
	pool sync.Pool
}

// NewSigner returns a Signer keyed with key. It returns nil for an empty
// key; a nil *Signer reports itself as disabled.
func NewSigner(key string) *Signer {
	if key == "" {
		return nil
	}

	k := []byte(key)
	return &Signer{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, k)
			},
		},
	}
}

// Enabled reports whether s can sign.
func (s *Signer) Enabled() bool {
	return s != nil
}

// Sign returns the raw HMAC-SHA256 digest of data.
func (s *Signer) Sign(data []byte) []byte {
	h := s.pool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	s.pool.Put(h)

	return sum
}

// SignHex returns the hex-encoded digest of data.
func (s *Signer) SignHex(data []byte) string {
	return hex.EncodeToString(s.Sign(data))
}

// Verify reports whether signature is the hex-encoded digest of data.
// The comparison is constant-time.
func (s *Signer) Verify(data []byte, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, s.Sign(data))
}
