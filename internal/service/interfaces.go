package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultService is the vault record lifecycle. Plaintext secrets enter through
// Save and Update and leave only through Reveal; every other operation works
// on envelopes or metadata.
type VaultService interface {
	// Generate returns a random secret under policy along with its strength.
	Generate(ctx context.Context, policy models.GenerationPolicy) (models.GenerateResponse, error)

	// Save encrypts draft.Secret under the owner's key and persists the
	// record. The returned record carries no secret.
	Save(ctx context.Context, ownerID string, draft models.RecordDraft) (models.VaultRecord, error)

	// List returns the owner's records newest first. Nothing is decrypted.
	List(ctx context.Context, ownerID string, query models.ListQuery) ([]models.VaultRecord, error)

	// Reveal decrypts the secret of one record. Any decryption failure is
	// reported as [ErrUnableToDecrypt].
	Reveal(ctx context.Context, ownerID, id string) (string, error)

	// Update replaces the record's fields and re-encrypts the secret with a
	// fresh salt and nonce.
	Update(ctx context.Context, ownerID, id string, draft models.RecordDraft) (models.VaultRecord, error)

	// Delete removes the record and with it the only copy of its envelope.
	Delete(ctx context.Context, ownerID, id string) error
}

// BackupService exports a user's envelopes to the object store.
type BackupService interface {
	Export(ctx context.Context, ownerID string) (models.ExportResponse, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, identity string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// SecretGenerator is satisfied by *generator.Generator.
type SecretGenerator interface {
	Generate(policy models.GenerationPolicy) (string, error)
	Strength(policy models.GenerationPolicy) (float64, error)
}
