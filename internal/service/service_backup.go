package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// BackupFormat identifies the layout of [models.BackupArchive].
const BackupFormat = "go-pass-vault/backup-v1"

// backupTimeLayout names backup objects so they sort chronologically.
const backupTimeLayout = "20060102T150405Z"

type backupService struct {
	records store.VaultRecordRepository
	backups store.BackupStorage

	now   func() time.Time
	newID func() string

	logger *logger.Logger
}

// NewBackupService constructs a BackupService. backups may be nil, in which
// case Export reports [ErrBackupDisabled].
func NewBackupService(records store.VaultRecordRepository, backups store.BackupStorage, logger *logger.Logger) BackupService {
	return &backupService{
		records: records,
		backups: backups,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   utils.NewUUIDGenerator().Generate,
		logger:  logger,
	}
}

// Export writes every record of ownerID as an envelopes-only JSON archive.
// Nothing is decrypted.
func (b *backupService) Export(ctx context.Context, ownerID string) (models.ExportResponse, error) {
	log := logger.FromContext(ctx)

	if b.backups == nil {
		return models.ExportResponse{}, ErrBackupDisabled
	}
	if strings.TrimSpace(ownerID) == "" {
		return models.ExportResponse{}, ErrEmptyIdentity
	}

	records, err := b.records.List(ctx, ownerID, models.ListQuery{})
	if err != nil {
		return models.ExportResponse{}, fmt.Errorf("error listing vault records for backup: %w", err)
	}

	createdAt := b.now()
	archive := models.BackupArchive{
		Format:    BackupFormat,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		Records:   make([]models.BackupRecord, 0, len(records)),
	}
	for _, r := range records {
		archive.Records = append(archive.Records, models.NewBackupRecord(r))
	}

	data, err := json.Marshal(archive)
	if err != nil {
		return models.ExportResponse{}, fmt.Errorf("error encoding backup archive: %w", err)
	}

	object, err := b.backups.Put(ctx, backupObjectName(ownerID, createdAt, b.newID()), data)
	if err != nil {
		return models.ExportResponse{}, fmt.Errorf("error uploading backup archive: %w", err)
	}

	log.Info().Str("object", object).Int("records", len(records)).Msg("backup exported")
	return models.ExportResponse{
		Object:    object,
		Records:   len(records),
		CreatedAt: createdAt,
	}, nil
}

// backupObjectName keeps owners in separate prefixes. The identity is
// path-escaped, so distinct owners never share a prefix and none can escape
// its own. The id suffix keeps exports within the same second apart.
func backupObjectName(ownerID string, at time.Time, id string) string {
	prefix := url.PathEscape(ownerID)
	if prefix == "." || prefix == ".." {
		prefix = strings.ReplaceAll(prefix, ".", "%2E")
	}
	return prefix + "/" + at.Format(backupTimeLayout) + "-" + id + ".json"
}
