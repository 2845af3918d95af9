package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
)

// MaskedSecret is shown in place of a secret that is hidden or could not be
// decrypted.
const MaskedSecret = "••••••••"

// ClientVaultService defines the client-side contract used by the CLI. It
// forwards record operations to the server adapter and owns the local
// exposure of revealed secrets.
type ClientVaultService interface {
	// Generate asks the server for a random secret under policy.
	Generate(ctx context.Context, policy models.GenerationPolicy) (models.GenerateResponse, error)

	// Add saves a new record on the server.
	Add(ctx context.Context, draft models.RecordDraft) (models.VaultRecord, error)

	// List returns the caller's records, newest first, without secrets.
	List(ctx context.Context, query models.ListQuery) ([]models.VaultRecord, error)

	// RevealForDisplay returns the plaintext secret of one record. On any
	// failure it returns [MaskedSecret] together with the error, so callers
	// can always render something.
	RevealForDisplay(ctx context.Context, id string) (string, error)

	// Copy reveals one record and places the secret on the clipboard with a
	// scheduled clear. The returned channel is closed when the exposure
	// ends.
	Copy(ctx context.Context, id string) (<-chan struct{}, error)

	// CopyText places text on the clipboard with the same scheduled clear as
	// Copy.
	CopyText(text string) (<-chan struct{}, error)

	// Update replaces a record on the server.
	Update(ctx context.Context, id string, draft models.RecordDraft) (models.VaultRecord, error)

	// Delete removes a record on the server.
	Delete(ctx context.Context, id string) error

	// Export asks the server for an encrypted backup.
	Export(ctx context.Context) (models.ExportResponse, error)

	// ServerVersion returns the server build information.
	ServerVersion(ctx context.Context) (models.AppBuildInfo, error)
}

// ClipboardManager is satisfied by *clipboard.Manager.
type ClipboardManager interface {
	Copy(text string, clearAfter time.Duration) (<-chan struct{}, error)
	Clear() error
}
