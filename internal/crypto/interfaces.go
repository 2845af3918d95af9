package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a user identity into the symmetric key that protects that
// user's secrets.
//
// Derivation is deterministic: the same identity always yields the same key,
// so no key storage is needed to open previously saved envelopes. The
// identity alone is never sufficient: it is combined with a server-held
// pepper that is not transmitted to clients.
//
// The returned key belongs to the caller, who should wipe it (see [Wipe])
// once the encrypt or decrypt call it was derived for is done.
type KeyDeriver interface {
	// DeriveKey returns a [KeySize]-byte key for identity.
	// Returns [ErrEmptyIdentity] for an empty identity.
	DeriveKey(identity string) ([]byte, error)
}

// SecretCipher performs authenticated encryption of a single secret and
// serializes the result into a self-describing envelope string.
//
// Envelope layout:
//
//	v<version>$<algorithm>$<salt>$<nonce>$<ciphertext‖tag>
//
// Binary fields are unpadded base64url. The header (v<version>$<algorithm>)
// is bound to the ciphertext as associated data.
type SecretCipher interface {
	// Encrypt seals plaintext under key. Every call draws a fresh salt and
	// nonce, so encrypting the same plaintext twice yields different
	// envelopes.
	Encrypt(plaintext, key []byte) (string, error)

	// Decrypt opens an envelope produced by Encrypt with any registered
	// envelope version. It returns an error wrapping [ErrDecryptionFailed]
	// (either [ErrAuthenticationFailed] or [ErrMalformedEnvelope]) and no
	// plaintext when the envelope cannot be opened.
	Decrypt(envelope string, key []byte) ([]byte, error)
}
