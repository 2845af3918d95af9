package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/migrations"
)

// Dialect describes the SQL flavour of an open connection.
type Dialect struct {
	// Name is the goose dialect used for migrations.
	Name string
	// Placeholder is the squirrel bind-variable format.
	Placeholder sq.PlaceholderFormat
}

var (
	PostgresDialect = Dialect{Name: migrations.DialectPostgres, Placeholder: sq.Dollar}
	SQLiteDialect   = Dialect{Name: migrations.DialectSQLite, Placeholder: sq.Question}
)

// DB wraps a *sql.DB with its dialect and a classifier for driver errors.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectDB opens the backend selected by the DSN: a postgres:// or
// postgresql:// URI opens PostgreSQL, anything else is a SQLite file path.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch {
	case dsn == "":
		return nil, ErrUnsupportedDSN
	case isPostgresDSN(dsn):
		return NewConnectPostgres(ctx, dsn, log)
	default:
		return NewConnectSQLite(ctx, dsn, log)
	}
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// Dialect returns the SQL flavour of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.Name)
}

// builder returns a squirrel statement builder bound to the dialect.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.Placeholder)
}

// classify wraps transient driver errors with [ErrStoreUnavailable] and
// otherwise annotates err with kind.
func (db *DB) classify(kind error, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", kind, err)
	}
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, kind, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}
