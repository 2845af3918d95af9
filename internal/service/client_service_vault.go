// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type clientVaultService struct {
	adapter    adapter.ServerAdapter
	clipboard  ClipboardManager
	clearAfter time.Duration

	logger *logger.Logger
}

// NewClientVaultService constructs a ClientVaultService. clearAfter bounds
// how long a copied secret stays on the clipboard.
func NewClientVaultService(serverAdapter adapter.ServerAdapter, clipboard ClipboardManager, clearAfter time.Duration, logger *logger.Logger) ClientVaultService {
	return &clientVaultService{
		adapter:    serverAdapter,
		clipboard:  clipboard,
		clearAfter: clearAfter,
		logger:     logger,
	}
}

func (c *clientVaultService) Generate(ctx context.Context, policy models.GenerationPolicy) (models.GenerateResponse, error) {
	resp, err := c.adapter.Generate(ctx, policy)
	if err != nil {
		return models.GenerateResponse{}, fmt.Errorf("generate secret on server: %w", err)
	}
	return resp, nil
}

func (c *clientVaultService) Add(ctx context.Context, draft models.RecordDraft) (models.VaultRecord, error) {
	record, err := c.adapter.Create(ctx, draft)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("save record on server: %w", err)
	}
	return record, nil
}

func (c *clientVaultService) List(ctx context.Context, query models.ListQuery) ([]models.VaultRecord, error) {
	records, err := c.adapter.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list records on server: %w", err)
	}
	return records, nil
}

func (c *clientVaultService) RevealForDisplay(ctx context.Context, id string) (string, error) {
	secret, err := c.reveal(ctx, id)
	if err != nil {
		c.logger.Err(err).Str("record_id", id).Msg("secret reveal failed, showing mask")
		return MaskedSecret, err
	}
	return secret, nil
}

func (c *clientVaultService) Copy(ctx context.Context, id string) (<-chan struct{}, error) {
	secret, err := c.reveal(ctx, id)
	if err != nil {
		return nil, err
	}

	done, err := c.CopyText(secret)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Str("record_id", id).Dur("clear_after", c.clearAfter).Msg("secret copied")
	return done, nil
}

func (c *clientVaultService) CopyText(text string) (<-chan struct{}, error) {
	done, err := c.clipboard.Copy(text, c.clearAfter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClipboardFailed, err)
	}
	return done, nil
}

func (c *clientVaultService) Update(ctx context.Context, id string, draft models.RecordDraft) (models.VaultRecord, error) {
	record, err := c.adapter.Update(ctx, id, draft)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("update record on server: %w", err)
	}
	return record, nil
}

func (c *clientVaultService) Delete(ctx context.Context, id string) error {
	if err := c.adapter.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record on server: %w", err)
	}
	return nil
}

func (c *clientVaultService) Export(ctx context.Context) (models.ExportResponse, error) {
	resp, err := c.adapter.Export(ctx)
	if err != nil {
		return models.ExportResponse{}, fmt.Errorf("export backup on server: %w", err)
	}
	return resp, nil
}

func (c *clientVaultService) ServerVersion(ctx context.Context) (models.AppBuildInfo, error) {
	info, err := c.adapter.Version(ctx)
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("get server version: %w", err)
	}
	return info, nil
}

// reveal maps the server's decryption failure onto [ErrUnableToDecrypt].
func (c *clientVaultService) reveal(ctx context.Context, id string) (string, error) {
	secret, err := c.adapter.Reveal(ctx, id)
	switch {
	case errors.Is(err, adapter.ErrUnableToDecrypt):
		return "", ErrUnableToDecrypt
	case err != nil:
		return "", fmt.Errorf("reveal secret on server: %w", err)
	}
	return secret, nil
}
