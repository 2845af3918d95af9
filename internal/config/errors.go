package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates a missing or weak pepper, or missing
	// token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidEngineConfigs indicates an unknown envelope version or
	// generator bounds outside the accepted range.
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN or an incomplete
	// backup store.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidClipboardConfigs indicates a non-positive clear timeout.
	ErrInvalidClipboardConfigs = errors.New("invalid clipboard configuration")
)
