package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: Retryable},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: Retryable},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: Retryable},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, want: Retryable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: NonRetryable},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, want: NonRetryable},
		{name: "unknown code", err: &pgconn.PgError{Code: "XX000"}, want: NonRetryable},
		{name: "wrapped", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40001"}), want: Retryable},
		{name: "bad conn", err: driver.ErrBadConn, want: Retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("wrapped: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestPostgresError(t *testing.T) {
	assert.Equal(t, "23505", postgresError(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505"})))
	assert.Empty(t, postgresError(errors.New("boom")))
}

func TestDB_Classify(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	err := db.classify(ErrExecutingQuery, &pgconn.PgError{Code: "40001"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, ErrExecutingQuery)

	err = db.classify(ErrExecutingQuery, context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)

	err = db.classify(ErrExecutingQuery, errors.New("boom"))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewConnectDB_EmptyDSN(t *testing.T) {
	db, err := NewConnectDB(context.Background(), config.DB{DSN: "  "}, logger.Nop())

	assert.ErrorIs(t, err, ErrUnsupportedDSN)
	assert.Nil(t, db)
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, isPostgresDSN("postgres://u:p@localhost/db"))
	assert.True(t, isPostgresDSN("PostgreSQL://localhost/db"))
	assert.False(t, isPostgresDSN("vault.db"))
	assert.False(t, isPostgresDSN("sqlite:///tmp/vault.db"))
}
