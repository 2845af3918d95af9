package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrUnableToDecrypt is the only decryption failure surfaced to callers.
	// Tag mismatches, wrong keys and malformed envelopes all collapse into it.
	ErrUnableToDecrypt = errors.New("unable to decrypt")

	// ErrEmptyIdentity is returned when an operation is called without the
	// identity that owns the records.
	ErrEmptyIdentity = errors.New("empty identity")

	// ErrBackupDisabled is returned by Export when no object store is
	// configured.
	ErrBackupDisabled = errors.New("backups are disabled")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
)

// Client-side errors.
var (
	ErrClipboardFailed = errors.New("unable to place secret on clipboard")
)
