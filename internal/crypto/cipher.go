// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	derivedKeyLen = 32
	nonceLen      = 12
)

type aesGCMCipher struct {
	masterKey []byte
}

// NewSecretCipher builds a [SecretCipher] from a base64-encoded master key.
//
// Each owner gets its own AES-256 key: HKDF-SHA256 over the master key with
// no salt and the owner id as info. Passwords are sealed with AES-GCM under
// a fresh 12-byte nonce.
func NewSecretCipher(masterKeyB64 string) (SecretCipher, error) {
	key, err := base64.StdEncoding.DecodeString(masterKeyB64)
	if err != nil || len(key) == 0 {
		return nil, ErrInvalidMasterKey
	}
	return &aesGCMCipher{masterKey: key}, nil
}

func (c *aesGCMCipher) userAEAD(userID string) (cipher.AEAD, error) {
	key := make([]byte, derivedKeyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, c.masterKey, nil, []byte(userID)), key); err != nil {
		return nil, fmt.Errorf("error deriving user key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *aesGCMCipher) Seal(userID, plaintext string) (string, string, error) {
	aead, err := c.userAEAD(userID)
	if err != nil {
		return "", "", err
	}

	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", "", fmt.Errorf("error generating nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), base64.StdEncoding.EncodeToString(nonce), nil
}

func (c *aesGCMCipher) Open(userID, ciphertext, nonce string) (string, error) {
	aead, err := c.userAEAD(userID)
	if err != nil {
		return "", err
	}

	rawCipher, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	rawNonce, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil || len(rawNonce) != aead.NonceSize() {
		return "", fmt.Errorf("%w: bad nonce", ErrDecrypt)
	}

	plain, err := aead.Open(nil, rawNonce, rawCipher, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return string(plain), nil
}
