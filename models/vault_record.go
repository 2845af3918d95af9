// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VaultRecord is a single credential stored in the vault.
//
// The plaintext secret is never a field of VaultRecord: only its encrypted
// envelope is kept here. SecretEnvelope is excluded from JSON so that list
// and create responses never ship ciphertext to clients.
type VaultRecord struct {
	// ID is the record identifier (UUIDv7, time-ordered).
	ID string `json:"id"`

	// OwnerID is the identity the record belongs to. Ownership is enforced
	// by the store through the owner_id column on every query.
	OwnerID string `json:"-"`

	// Title is the human-readable name of the credential. Required.
	Title string `json:"title"`

	// Username is the optional login associated with the secret.
	Username *string `json:"username,omitempty"`

	// SecretEnvelope is the serialized, self-describing ciphertext of the
	// secret (see internal/crypto).
	SecretEnvelope string `json:"-"`

	// URL is the optional address of the service the credential belongs to.
	URL *string `json:"url,omitempty"`

	// Notes holds optional free-form notes.
	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordDraft is the caller-supplied input for saving or editing a record.
// Secret carries plaintext and must only live for the duration of a
// save/update call.
type RecordDraft struct {
	Title    string  `json:"title"`
	Username *string `json:"username,omitempty"`
	Secret   string  `json:"secret"`
	URL      *string `json:"url,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ListQuery narrows a record listing. Filter is matched case-insensitively
// against title, username and url.
type ListQuery struct {
	Filter string `json:"filter,omitempty"`
}
