// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared message strings written into HTTP error
// bodies by the vault server, so that wording stays consistent across
// handlers and middleware.
package app

const (
	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidGzip is returned when a gzip-encoded body cannot be read.
	MsgInvalidGzip = "invalid gzip data"

	// MsgRecordNotFound is returned when the record does not exist or
	// belongs to another identity. The two cases are indistinguishable on
	// purpose.
	MsgRecordNotFound = "record not found"

	// MsgRecordAlreadyExists is returned on a record id collision.
	MsgRecordAlreadyExists = "record already exists"

	// MsgUnableToDecrypt is the only text a client ever sees for a secret
	// that could not be opened.
	MsgUnableToDecrypt = "unable to decrypt"

	// MsgBackupsDisabled is returned by export when no object store is
	// configured.
	MsgBackupsDisabled = "backups are disabled"

	// MsgRequestTimedOut is written when a request exceeds the server
	// request timeout.
	MsgRequestTimedOut = `{"error":"request timed out"}`
)
