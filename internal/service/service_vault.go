// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultService is the concrete implementation of VaultService.
//
// It holds no per-user state: every Save, Update and Reveal derives the
// owner's key, uses it for exactly one cipher call and wipes it.
type vaultService struct {
	records   store.VaultRecordRepository
	generator SecretGenerator
	deriver   crypto.KeyDeriver
	cipher    crypto.SecretCipher

	newID func() string
	now   func() time.Time

	logger *logger.Logger
}

// NewVaultService constructs a VaultService. It performs no validation of
// drafts; wrap it with [NewVaultValidationService] for that.
func NewVaultService(
	records store.VaultRecordRepository,
	generator SecretGenerator,
	deriver crypto.KeyDeriver,
	cipher crypto.SecretCipher,
	logger *logger.Logger,
) VaultService {
	return &vaultService{
		records:   records,
		generator: generator,
		deriver:   deriver,
		cipher:    cipher,
		newID:     utils.NewUUIDGenerator().Generate,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

// Generate implements VaultService.
func (s *vaultService) Generate(ctx context.Context, policy models.GenerationPolicy) (models.GenerateResponse, error) {
	secret, err := s.generator.Generate(policy)
	if err != nil {
		return models.GenerateResponse{}, fmt.Errorf("error generating secret: %w", err)
	}

	bits, err := s.generator.Strength(policy)
	if err != nil {
		return models.GenerateResponse{}, fmt.Errorf("error measuring secret strength: %w", err)
	}

	return models.GenerateResponse{
		Secret:      secret,
		Length:      policy.Length,
		EntropyBits: bits,
	}, nil
}

// Save implements VaultService.
func (s *vaultService) Save(ctx context.Context, ownerID string, draft models.RecordDraft) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(ownerID) == "" {
		return models.VaultRecord{}, ErrEmptyIdentity
	}

	envelope, err := s.seal(ownerID, draft.Secret)
	if err != nil {
		log.Err(err).Str("func", "vaultService.Save").Msg("error encrypting secret")
		return models.VaultRecord{}, err
	}

	now := s.now()
	record := models.VaultRecord{
		ID:             s.newID(),
		OwnerID:        ownerID,
		Title:          draft.Title,
		Username:       draft.Username,
		SecretEnvelope: envelope,
		URL:            draft.URL,
		Notes:          draft.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err = s.records.Insert(ctx, record); err != nil {
		log.Err(err).Str("func", "vaultService.Save").Str("record_id", record.ID).Msg("error saving vault record")
		return models.VaultRecord{}, fmt.Errorf("error saving vault record: %w", err)
	}

	log.Info().Str("record_id", record.ID).Msg("vault record saved")
	return withoutEnvelope(record), nil
}

// List implements VaultService.
func (s *vaultService) List(ctx context.Context, ownerID string, query models.ListQuery) ([]models.VaultRecord, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrEmptyIdentity
	}

	records, err := s.records.List(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("error listing vault records: %w", err)
	}

	for i := range records {
		records[i] = withoutEnvelope(records[i])
	}

	return records, nil
}

// Reveal implements VaultService.
func (s *vaultService) Reveal(ctx context.Context, ownerID, id string) (string, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(ownerID) == "" {
		return "", ErrEmptyIdentity
	}

	record, err := s.records.Get(ctx, ownerID, id)
	if err != nil {
		return "", fmt.Errorf("error getting vault record: %w", err)
	}

	key, err := s.deriver.DeriveKey(ownerID)
	if err != nil {
		return "", fmt.Errorf("error deriving key: %w", err)
	}
	defer crypto.Wipe(key)

	plaintext, err := s.cipher.Decrypt(record.SecretEnvelope, key)
	if err != nil {
		// the cause stays in the log; callers only ever see ErrUnableToDecrypt
		log.Warn().Err(err).Str("record_id", id).Msg("secret could not be decrypted")
		return "", ErrUnableToDecrypt
	}
	defer memguard.WipeBytes(plaintext)

	log.Info().Str("record_id", id).Msg("secret revealed")
	return string(plaintext), nil
}

// Update implements VaultService.
func (s *vaultService) Update(ctx context.Context, ownerID, id string, draft models.RecordDraft) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(ownerID) == "" {
		return models.VaultRecord{}, ErrEmptyIdentity
	}

	envelope, err := s.seal(ownerID, draft.Secret)
	if err != nil {
		log.Err(err).Str("func", "vaultService.Update").Msg("error encrypting secret")
		return models.VaultRecord{}, err
	}

	updated, err := s.records.Update(ctx, models.VaultRecord{
		ID:             id,
		OwnerID:        ownerID,
		Title:          draft.Title,
		Username:       draft.Username,
		SecretEnvelope: envelope,
		URL:            draft.URL,
		Notes:          draft.Notes,
		UpdatedAt:      s.now(),
	})
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("error updating vault record: %w", err)
	}

	log.Info().Str("record_id", id).Msg("vault record updated")
	return withoutEnvelope(updated), nil
}

// Delete implements VaultService.
func (s *vaultService) Delete(ctx context.Context, ownerID, id string) error {
	if strings.TrimSpace(ownerID) == "" {
		return ErrEmptyIdentity
	}

	if err := s.records.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("error deleting vault record: %w", err)
	}

	logger.FromContext(ctx).Info().Str("record_id", id).Msg("vault record deleted")
	return nil
}

// seal derives the owner's key and encrypts secret into an envelope.
// The key and the plaintext copy are wiped before returning.
func (s *vaultService) seal(ownerID, secret string) (string, error) {
	key, err := s.deriver.DeriveKey(ownerID)
	if err != nil {
		if errors.Is(err, crypto.ErrEmptyIdentity) {
			return "", ErrEmptyIdentity
		}
		return "", fmt.Errorf("error deriving key: %w", err)
	}
	defer crypto.Wipe(key)

	plaintext := []byte(secret)
	defer memguard.WipeBytes(plaintext)

	envelope, err := s.cipher.Encrypt(plaintext, key)
	if err != nil {
		return "", fmt.Errorf("error encrypting secret: %w", err)
	}

	return envelope, nil
}

func withoutEnvelope(record models.VaultRecord) models.VaultRecord {
	record.SecretEnvelope = ""
	return record
}
