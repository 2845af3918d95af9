// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-pass-vault server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnableToDecrypt] for 422).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the vault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Generate asks the server for a random secret under policy.
	Generate(ctx context.Context, policy models.GenerationPolicy) (models.GenerateResponse, error)

	// Create saves a new record. The plaintext secret travels only in this
	// request; the returned record carries no secret.
	Create(ctx context.Context, draft models.RecordDraft) (models.VaultRecord, error)

	// List returns the caller's records, newest first. No secrets are
	// included.
	List(ctx context.Context, query models.ListQuery) ([]models.VaultRecord, error)

	// Reveal returns the decrypted secret of one record.
	Reveal(ctx context.Context, id string) (string, error)

	// Update replaces a record. The secret is re-encrypted by the server.
	Update(ctx context.Context, id string, draft models.RecordDraft) (models.VaultRecord, error)

	// Delete removes one record.
	Delete(ctx context.Context, id string) error

	// Export asks the server to write an encrypted backup of every record.
	Export(ctx context.Context) (models.ExportResponse, error)

	// Version returns the server build information.
	Version(ctx context.Context) (models.AppBuildInfo, error)
}
