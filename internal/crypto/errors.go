// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	ErrMalformedHash    = errors.New("malformed password hash")
	ErrIncompatibleHash = errors.New("incompatible argon2 version")
	ErrInvalidMasterKey = errors.New("invalid vault master key")
	ErrDecrypt          = errors.New("unable to decrypt secret")
)
