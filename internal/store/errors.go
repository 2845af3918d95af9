package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStoreUnavailable is returned when the backend fails with a
	// transient error (lost connection, serialization failure, busy or
	// locked database). The operation may succeed if retried.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrRecordNotFound is returned when no record with the given id exists
	// for the given owner.
	ErrRecordNotFound = errors.New("vault record was not found")

	// ErrRecordNotSaved is returned when an INSERT completes without error
	// but affects no rows.
	ErrRecordNotSaved = errors.New("vault record was not saved")

	// ErrRecordAlreadyExists is returned when a record id collides with an
	// existing row.
	ErrRecordAlreadyExists = errors.New("vault record already exists")

	// ErrBackupNotSaved is returned when the object store rejects an upload.
	ErrBackupNotSaved = errors.New("backup was not saved")

	// ErrUnsupportedDSN is returned when the DSN selects no known backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan vault record row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan vault record rows")
)
