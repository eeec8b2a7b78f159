// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns an encoded argon2id hash of password in PHC string
	// format ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed encoded
	// string yields ErrMalformedHash.
	Verify(password, encoded string) (bool, error)
}

// SecretCipher seals vault item passwords at rest with a key derived per
// owner from the server master key.
type SecretCipher interface {
	// Seal encrypts plaintext for userID and returns the base64 ciphertext
	// and base64 nonce.
	Seal(userID, plaintext string) (ciphertext, nonce string, err error)

	// Open reverses Seal. It fails with ErrDecrypt when the data was sealed
	// for another user or has been tampered with.
	Open(userID, ciphertext, nonce string) (string, error)
}
