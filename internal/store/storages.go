package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// Storages aggregates every persistence backend the server uses.
// Backups is nil when no object store is configured.
type Storages struct {
	VaultRecords VaultRecordRepository
	Backups      BackupStorage

	db *DB
}

// NewStorages connects the record database, applies migrations and, when
// configured, connects the backup object store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting record database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, errors.Join(err, db.Close())
	}

	storages := &Storages{
		VaultRecords: NewVaultRecordRepository(db, log),
		db:           db,
	}

	if cfg.Backup.Enabled() {
		backups, backupErr := NewMinioBackupStorage(ctx, cfg.Backup, log)
		if backupErr != nil {
			return nil, errors.Join(fmt.Errorf("error connecting backup storage: %w", backupErr), db.Close())
		}
		storages.Backups = backups
	}

	return storages, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
