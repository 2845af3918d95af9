package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultRecordRepository is the SQL implementation of [VaultRecordRepository]
// shared by the PostgreSQL and SQLite backends. Queries are built per call
// with the placeholder format of the embedded [*DB].
type vaultRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewVaultRecordRepository constructs a [VaultRecordRepository] backed by db.
func NewVaultRecordRepository(db *DB, logger *logger.Logger) VaultRecordRepository {
	logger.Debug().Str("dialect", db.dialect.Name).Msg("creating vault record repository")
	return &vaultRecordRepository{
		DB:     db,
		logger: logger,
	}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (models.VaultRecord, error) {
	var record models.VaultRecord
	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.Title,
		&record.Username,
		&record.SecretEnvelope,
		&record.URL,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	return record, err
}

// Insert implements [VaultRecordRepository].
func (r *vaultRecordRepository) Insert(ctx context.Context, record models.VaultRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertRecordQuery(r.builder(), record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRecordRepository.Insert").
			Str("record_id", record.ID).
			Msg("failed to insert vault record")
		if isUniqueViolation(err) {
			return ErrRecordAlreadyExists
		}
		return r.classify(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		return ErrRecordNotSaved
	}

	return nil
}

// List implements [VaultRecordRepository].
func (r *vaultRecordRepository) List(ctx context.Context, ownerID string, query models.ListQuery) ([]models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildListRecordsQuery(r.builder(), ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRecordRepository.List").
			Msg("failed to execute query for listing vault records")
		return nil, r.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.VaultRecord, 0, 16)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "vaultRecordRepository.List").
				Msg("failed to scan vault record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "vaultRecordRepository.List").
			Msg("error occurred during rows iteration")
		return nil, r.classify(ErrScanningRows, err)
	}

	return records, nil
}

// Get implements [VaultRecordRepository].
func (r *vaultRecordRepository) Get(ctx context.Context, ownerID, id string) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(r.builder(), ownerID, id)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultRecord{}, ErrRecordNotFound
	case err != nil:
		log.Err(err).
			Str("func", "vaultRecordRepository.Get").
			Str("record_id", id).
			Msg("failed to get vault record")
		return models.VaultRecord{}, r.classify(ErrExecutingQuery, err)
	}

	return record, nil
}

// Update implements [VaultRecordRepository]. CreatedAt is not modified;
// the returned record is re-read from the store.
func (r *vaultRecordRepository) Update(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateRecordQuery(r.builder(), record)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRecordRepository.Update").
			Str("record_id", record.ID).
			Msg("failed to update vault record")
		return models.VaultRecord{}, r.classify(ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return models.VaultRecord{}, ErrRecordNotFound
	}

	return r.Get(ctx, record.OwnerID, record.ID)
}

// Delete implements [VaultRecordRepository].
func (r *vaultRecordRepository) Delete(ctx context.Context, ownerID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(r.builder(), ownerID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRecordRepository.Delete").
			Str("record_id", id).
			Msg("failed to delete vault record")
		return r.classify(ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique)
}
