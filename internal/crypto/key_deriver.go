// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the length of every key produced by [KeyDeriver] and
	// accepted by [SecretCipher].
	KeySize = 32

	// MinPepperLength is the shortest pepper [NewKeyDeriver] accepts.
	MinPepperLength = 16

	// DefaultKDFContext is the public, application-specific context mixed
	// into every derivation.
	DefaultKDFContext = "go-pass-vault/user-key/v1"
)

// Argon2Params holds the Argon2id cost parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultArgon2Params returns the OWASP recommended Argon2id parameters:
// 1 iteration, 64 MiB, 4 lanes.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// keyDeriver is the Argon2id implementation of [KeyDeriver].
//
// For an identity id the key is
//
//	salt = HMAC-SHA256(pepper, context ‖ 0x00 ‖ id)
//	key  = Argon2id(id, salt, params, KeySize)
//
// The pepper keys the salt, so knowing id (which travels alongside the
// ciphertext) is not enough to recompute the key.
type keyDeriver struct {
	pepper  *memguard.Enclave
	context string
	params  Argon2Params
}

// NewKeyDeriver constructs a [KeyDeriver]. The pepper is moved into an
// encrypted memguard enclave and the pepper slice is wiped. An empty context
// selects [DefaultKDFContext].
//
// Returns [ErrWeakPepper] when the pepper is shorter than [MinPepperLength].
func NewKeyDeriver(pepper []byte, context string, params Argon2Params) (KeyDeriver, error) {
	if len(pepper) < MinPepperLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakPepper, MinPepperLength)
	}
	if context == "" {
		context = DefaultKDFContext
	}
	if params.Time == 0 || params.Memory == 0 || params.Threads == 0 {
		params = DefaultArgon2Params()
	}

	return &keyDeriver{
		pepper:  memguard.NewEnclave(pepper),
		context: context,
		params:  params,
	}, nil
}

// DeriveKey implements [KeyDeriver].
func (d *keyDeriver) DeriveKey(identity string) ([]byte, error) {
	if identity == "" {
		return nil, ErrEmptyIdentity
	}

	pepper, err := d.pepper.Open()
	if err != nil {
		return nil, fmt.Errorf("open pepper enclave: %w", err)
	}
	defer pepper.Destroy()

	mac := hmac.New(sha256.New, pepper.Bytes())
	mac.Write([]byte(d.context))
	mac.Write([]byte{0})
	mac.Write([]byte(identity))
	salt := mac.Sum(nil)
	defer memguard.WipeBytes(salt)

	return argon2.IDKey([]byte(identity), salt, d.params.Time, d.params.Memory, d.params.Threads, KeySize), nil
}

// Wipe zeroes key material in place.
func Wipe(b []byte) {
	memguard.WipeBytes(b)
}
