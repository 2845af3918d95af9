// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// EnvelopeVersion selects the key-expansion and AEAD scheme of an envelope.
type EnvelopeVersion int

const (
	// EnvelopeV1 is AES-256-GCM with a 12-byte nonce.
	EnvelopeV1 EnvelopeVersion = 1
	// EnvelopeV2 is XChaCha20-Poly1305 with a 24-byte nonce.
	EnvelopeV2 EnvelopeVersion = 2

	// DefaultEnvelopeVersion is used for new envelopes unless configured
	// otherwise.
	DefaultEnvelopeVersion = EnvelopeV1
)

const saltSize = 16

// scheme describes one registered envelope version.
type scheme struct {
	algorithm string
	newAEAD   func(key []byte) (cipher.AEAD, error)
}

// schemes lists every version this build can open. Versions are never
// removed, so envelopes written by older releases stay decryptable.
var schemes = map[EnvelopeVersion]scheme{
	EnvelopeV1: {
		algorithm: "aes-256-gcm",
		newAEAD: func(key []byte) (cipher.AEAD, error) {
			block, err := aes.NewCipher(key)
			if err != nil {
				return nil, err
			}
			return cipher.NewGCM(block)
		},
	},
	EnvelopeV2: {
		algorithm: "xchacha20-poly1305",
		newAEAD:   chacha20poly1305.NewX,
	},
}

// secretCipher is the private implementation of [SecretCipher].
type secretCipher struct {
	version EnvelopeVersion
	random  io.Reader
}

// CipherOption configures [NewSecretCipher].
type CipherOption func(*secretCipher)

// WithRandom replaces the source of salts and nonces. Tests only.
func WithRandom(r io.Reader) CipherOption {
	return func(c *secretCipher) {
		c.random = r
	}
}

// NewSecretCipher returns a [SecretCipher] that writes envelopes of the
// given version and reads every registered version.
//
// Returns [ErrInvalidVersion] for an unregistered version.
func NewSecretCipher(version EnvelopeVersion, opts ...CipherOption) (SecretCipher, error) {
	if _, ok := schemes[version]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	c := &secretCipher{
		version: version,
		random:  rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Encrypt implements [SecretCipher].
func (c *secretCipher) Encrypt(plaintext, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: %d", ErrInvalidKey, len(key))
	}

	s := schemes[c.version]
	e := envelope{
		version:   c.version,
		algorithm: s.algorithm,
		salt:      make([]byte, saltSize),
	}
	if _, err := io.ReadFull(c.random, e.salt); err != nil {
		return "", fmt.Errorf("%w: salt: %w", ErrRandomSource, err)
	}

	aead, err := newEnvelopeAEAD(key, e, s)
	if err != nil {
		return "", err
	}

	e.nonce = make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(c.random, e.nonce); err != nil {
		return "", fmt.Errorf("%w: nonce: %w", ErrRandomSource, err)
	}

	e.ciphertext = aead.Seal(nil, e.nonce, plaintext, []byte(e.header()))

	return e.String(), nil
}

// Decrypt implements [SecretCipher].
func (c *secretCipher) Decrypt(serialized string, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKey, len(key))
	}

	e, err := parseEnvelope(serialized)
	if err != nil {
		return nil, err
	}

	s, ok := schemes[e.version]
	if !ok || s.algorithm != e.algorithm {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEnvelope, e.header())
	}
	if len(e.salt) != saltSize {
		return nil, fmt.Errorf("%w: salt size %d", ErrMalformedEnvelope, len(e.salt))
	}

	aead, err := newEnvelopeAEAD(key, e, s)
	if err != nil {
		return nil, err
	}

	if len(e.nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce size %d", ErrMalformedEnvelope, len(e.nonce))
	}
	if len(e.ciphertext) < aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrMalformedEnvelope)
	}

	plaintext, err := aead.Open(nil, e.nonce, e.ciphertext, []byte(e.header()))
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

// newEnvelopeAEAD expands key into a per-envelope subkey with HKDF-SHA256
// (salt from the envelope, info bound to version and algorithm) and builds
// the scheme's AEAD from it. The subkey is wiped before returning; the AEAD
// keeps its own expanded copy.
func newEnvelopeAEAD(key []byte, e envelope, s scheme) (cipher.AEAD, error) {
	subkey := make([]byte, KeySize)
	defer Wipe(subkey)

	info := []byte("go-pass-vault/" + e.header())
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, e.salt, info), subkey); err != nil {
		return nil, fmt.Errorf("expand envelope key: %w", err)
	}

	aead, err := s.newAEAD(subkey)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.algorithm, err)
	}

	return aead, nil
}
