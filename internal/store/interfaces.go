// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists vault records and encrypted backups.
//
// Records live in PostgreSQL (pgx) or SQLite (mattn/go-sqlite3); queries are
// built with squirrel for the dialect of the open connection. Backups are
// written to an S3-compatible object store with minio-go.
//
// The store only ever sees secret envelopes, never plaintext.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultRecordRepository is the owner-scoped record store. Every read and
// write is filtered by owner, so a record id alone never grants access.
type VaultRecordRepository interface {
	// Insert persists a new record. ID, OwnerID and timestamps must be set.
	Insert(ctx context.Context, record models.VaultRecord) error

	// List returns the owner's records, newest first, optionally narrowed
	// by a case-insensitive filter over title, username and url.
	List(ctx context.Context, ownerID string, query models.ListQuery) ([]models.VaultRecord, error)

	// Get returns one record or [ErrRecordNotFound].
	Get(ctx context.Context, ownerID, id string) (models.VaultRecord, error)

	// Update replaces the mutable fields of an existing record and returns
	// the stored result, or [ErrRecordNotFound].
	Update(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)

	// Delete removes one record or returns [ErrRecordNotFound].
	Delete(ctx context.Context, ownerID, id string) error
}

// BackupStorage writes encrypted backup archives to an object store.
type BackupStorage interface {
	// Put uploads data under objectName and returns the stored object key.
	Put(ctx context.Context, objectName string, data []byte) (string, error)
}

// ErrorClassificator decides whether a driver error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
