package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}

// VaultValidationService is a [VaultService] decorator that rejects invalid
// drafts, record ids and list queries before they reach the wrapped service.
// Every rejection wraps [ErrInvalidDataProvided].
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *VaultValidationService) Generate(ctx context.Context, policy models.GenerationPolicy) (models.GenerateResponse, error) {
	// policy constraints are owned by the generator
	return v.inner.Generate(ctx, policy)
}

func (v *VaultValidationService) Save(ctx context.Context, ownerID string, draft models.RecordDraft) (models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, draft); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Save(ctx, ownerID, draft)
}

func (v *VaultValidationService) List(ctx context.Context, ownerID string, query models.ListQuery) ([]models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.List(ctx, ownerID, query)
}

func (v *VaultValidationService) Reveal(ctx context.Context, ownerID, id string) (string, error) {
	if err := v.validateID(ctx, id); err != nil {
		return "", err
	}

	return v.inner.Reveal(ctx, ownerID, id)
}

func (v *VaultValidationService) Update(ctx context.Context, ownerID, id string, draft models.RecordDraft) (models.VaultRecord, error) {
	if err := v.validateID(ctx, id); err != nil {
		return models.VaultRecord{}, err
	}
	if err := v.validator.Validate(ctx, draft); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Update(ctx, ownerID, id, draft)
}

func (v *VaultValidationService) Delete(ctx context.Context, ownerID, id string) error {
	if err := v.validateID(ctx, id); err != nil {
		return err
	}

	return v.inner.Delete(ctx, ownerID, id)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}

func (v *VaultValidationService) validateID(ctx context.Context, id string) error {
	if err := v.validator.Validate(ctx, models.VaultRecord{ID: id}, validators.FieldRecordID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
