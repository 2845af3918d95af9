// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BackupArchive is the document written to the backup object store.
// It contains envelopes only; no plaintext secret ever enters an archive.
type BackupArchive struct {
	// Format identifies the archive layout so future readers can evolve it.
	Format    string         `json:"format"`
	OwnerID   string         `json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	Records   []BackupRecord `json:"records"`
}

// BackupRecord mirrors [VaultRecord] but keeps the envelope in the JSON
// encoding.
type BackupRecord struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Username       *string   `json:"username,omitempty"`
	SecretEnvelope string    `json:"secret_envelope"`
	URL            *string   `json:"url,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewBackupRecord copies the persisted fields of r into a [BackupRecord].
func NewBackupRecord(r VaultRecord) BackupRecord {
	return BackupRecord{
		ID:             r.ID,
		Title:          r.Title,
		Username:       r.Username,
		SecretEnvelope: r.SecretEnvelope,
		URL:            r.URL,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
