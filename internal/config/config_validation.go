// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// Outer limits for the configurable generator bounds; they match the
// generator's own floor and hard cap.
const (
	minAllowedLength = 1
	maxAllowedLength = 1024
)

// validate checks that the merged server configuration satisfies every
// startup invariant.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.Pepper) < 16 {
		return fmt.Errorf("%w: pepper must be at least 16 bytes", ErrInvalidAppConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token sign key and issuer are required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Backup.Enabled() && cfg.Storage.Backup.Bucket == "" {
		return fmt.Errorf("%w: backup bucket is required", ErrInvalidStorageConfigs)
	}

	return cfg.Engine.validate()
}

func (e Engine) validate() error {
	if e.EnvelopeVersion != 1 && e.EnvelopeVersion != 2 {
		return fmt.Errorf("%w: unknown envelope version %d", ErrInvalidEngineConfigs, e.EnvelopeVersion)
	}

	if e.MinLength < minAllowedLength || e.MaxLength > maxAllowedLength || e.MinLength > e.MaxLength {
		return fmt.Errorf("%w: length bounds [%d, %d] outside [%d, %d]",
			ErrInvalidEngineConfigs, e.MinLength, e.MaxLength, minAllowedLength, maxAllowedLength)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Clipboard.ClearAfter <= 0 {
		return ErrInvalidClipboardConfigs
	}

	return nil
}
