// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-pass-vault server and client. It is populated by merging values from
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds secrets and token parameters.
	App App `envPrefix:"APP_"`

	// Engine holds the generator bounds and the cryptographic cost settings.
	Engine Engine `envPrefix:"ENGINE_"`

	// Storage holds configuration for the record database and the backup
	// object store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client side view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Clipboard holds the clipboard clear timeout used by the client.
	Clipboard Clipboard `envPrefix:"CLIPBOARD_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control key
// derivation, token lifecycle and versioning.
type App struct {
	// Pepper is the server-held secret mixed into every key derivation.
	// Must be at least 16 bytes and kept confidential.
	// Env: APP_PEPPER
	Pepper string `env:"PEPPER"`

	// KDFContext is the public application context mixed into key
	// derivation. Empty selects the built-in context.
	// Env: APP_KDF_CONTEXT
	KDFContext string `env:"KDF_CONTEXT"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Engine holds the secret generator bounds and the KDF/cipher settings.
type Engine struct {
	// MinLength and MaxLength bound the accepted generation length.
	// Env: ENGINE_MIN_LENGTH, ENGINE_MAX_LENGTH
	MinLength int `env:"MIN_LENGTH"`
	MaxLength int `env:"MAX_LENGTH"`

	// EnvelopeVersion selects the envelope written by new encryptions.
	// Env: ENGINE_ENVELOPE_VERSION
	EnvelopeVersion int `env:"ENVELOPE_VERSION"`

	// Argon2id cost parameters. Zero values select the library defaults.
	// Env: ENGINE_ARGON_TIME, ENGINE_ARGON_MEMORY, ENGINE_ARGON_THREADS
	ArgonTime    uint32 `env:"ARGON_TIME"`
	ArgonMemory  uint32 `env:"ARGON_MEMORY"`
	ArgonThreads uint8  `env:"ARGON_THREADS"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Backup holds the object store settings used by record export.
	Backup Backup `envPrefix:"BACKUP_"`
}

// DB holds connection settings for the record database.
type DB struct {
	// DSN selects the backend: a postgres:// or postgresql:// URI opens
	// PostgreSQL, anything else is treated as a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Backup holds S3-compatible object store settings. Backups are disabled
// when Endpoint is empty.
type Backup struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION"`
	UseSSL    bool   `env:"USE_SSL"`
}

// Enabled reports whether an object store endpoint is configured.
func (b Backup) Enabled() bool {
	return b.Endpoint != ""
}

// Server holds network and timeout settings for the HTTP server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings the client uses to reach the server.
type Adapter struct {
	// HTTPAddress is the server base address, e.g. "localhost:8080" or
	// "https://vault.example.com".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token sent with every authenticated request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Clipboard holds client clipboard settings.
type Clipboard struct {
	// ClearAfter is how long a copied secret stays on the clipboard.
	// Env: CLIPBOARD_CLEAR_AFTER
	ClearAfter time.Duration `env:"CLEAR_AFTER"`
}

// Default values applied to fields left zero by every source.
const (
	DefaultServerAddress   = "localhost:8080"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultTokenDuration   = 24 * time.Hour
	DefaultMinLength       = 8
	DefaultMaxLength       = 64
	DefaultEnvelopeVersion = 1
	DefaultClearAfter      = 20 * time.Second
	DefaultBackupBucket    = "go-pass-vault-backups"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenDuration: DefaultTokenDuration,
		},
		Engine: Engine{
			MinLength:       DefaultMinLength,
			MaxLength:       DefaultMaxLength,
			EnvelopeVersion: DefaultEnvelopeVersion,
		},
		Storage: Storage{
			Backup: Backup{Bucket: DefaultBackupBucket},
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Clipboard: Clipboard{
			ClearAfter: DefaultClearAfter,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the server
// configuration from all available sources in the following priority order
// (later sources override non-zero fields of earlier ones):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left zero by every source receive their defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
