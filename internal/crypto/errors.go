package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrDecryptionFailed is the parent of every failure to open an envelope.
	// Callers that surface errors to users should match on it and nothing
	// more specific.
	ErrDecryptionFailed = errors.New("unable to decrypt")

	// ErrAuthenticationFailed means the authentication tag did not verify:
	// the envelope was tampered with, corrupted, or sealed under another key.
	ErrAuthenticationFailed = fmt.Errorf("%w: authentication failed", ErrDecryptionFailed)

	// ErrMalformedEnvelope means the envelope string could not be parsed.
	ErrMalformedEnvelope = fmt.Errorf("%w: malformed envelope", ErrDecryptionFailed)

	// ErrUnsupportedEnvelope means the envelope names a version or algorithm
	// this build does not know.
	ErrUnsupportedEnvelope = fmt.Errorf("%w: unsupported version", ErrMalformedEnvelope)
)

var (
	// ErrEmptyIdentity is returned by DeriveKey for a blank identity.
	ErrEmptyIdentity = errors.New("identity is empty")

	// ErrWeakPepper rejects a pepper shorter than MinPepperLength, an empty
	// one included.
	ErrWeakPepper = errors.New("pepper is too short")

	// ErrInvalidKey means a key of the wrong length reached the cipher.
	ErrInvalidKey = errors.New("invalid key length")

	// ErrInvalidVersion is returned by NewSecretCipher for an unregistered
	// envelope version.
	ErrInvalidVersion = errors.New("unknown envelope version")

	// ErrRandomSource means no salt or nonce could be drawn; nothing was
	// encrypted.
	ErrRandomSource = errors.New("secure random source failed")
)
