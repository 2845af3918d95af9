package crypto

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	envelopeSeparator = "$"
	envelopeFields    = 5
	versionPrefix     = "v"
)

// envelopeEncoding is strict so that a changed character always changes the
// decoded bytes or fails to decode.
var envelopeEncoding = base64.RawURLEncoding.Strict()

// envelope is the parsed form of a serialized secret.
type envelope struct {
	version    EnvelopeVersion
	algorithm  string
	salt       []byte
	nonce      []byte
	ciphertext []byte
}

// header returns "v<version>$<algorithm>", used as AEAD associated data.
func (e envelope) header() string {
	return headerFor(e.version, e.algorithm)
}

func headerFor(version EnvelopeVersion, algorithm string) string {
	return versionPrefix + strconv.Itoa(int(version)) + envelopeSeparator + algorithm
}

// String serializes the envelope.
func (e envelope) String() string {
	return strings.Join([]string{
		versionPrefix + strconv.Itoa(int(e.version)),
		e.algorithm,
		envelopeEncoding.EncodeToString(e.salt),
		envelopeEncoding.EncodeToString(e.nonce),
		envelopeEncoding.EncodeToString(e.ciphertext),
	}, envelopeSeparator)
}

// parseEnvelope splits and decodes a serialized envelope. It checks syntax
// only; scheme-specific sizes are checked by the cipher.
func parseEnvelope(s string) (envelope, error) {
	parts := strings.Split(s, envelopeSeparator)
	if len(parts) != envelopeFields {
		return envelope{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedEnvelope, envelopeFields, len(parts))
	}

	rawVersion, ok := strings.CutPrefix(parts[0], versionPrefix)
	if !ok {
		return envelope{}, fmt.Errorf("%w: missing version prefix", ErrMalformedEnvelope)
	}
	version, err := strconv.Atoi(rawVersion)
	// Only the canonical decimal form is accepted ("v1", not "v01" or "v+1").
	if err != nil || strconv.Itoa(version) != rawVersion {
		return envelope{}, fmt.Errorf("%w: bad version %q", ErrMalformedEnvelope, parts[0])
	}

	e := envelope{
		version:   EnvelopeVersion(version),
		algorithm: parts[1],
	}

	fields := []struct {
		name string
		dst  *[]byte
		raw  string
	}{
		{"salt", &e.salt, parts[2]},
		{"nonce", &e.nonce, parts[3]},
		{"ciphertext", &e.ciphertext, parts[4]},
	}
	for _, f := range fields {
		decoded, err := envelopeEncoding.DecodeString(f.raw)
		if err != nil {
			return envelope{}, fmt.Errorf("%w: decode %s: %v", ErrMalformedEnvelope, f.name, err)
		}
		*f.dst = decoded
	}

	return e, nil
}
