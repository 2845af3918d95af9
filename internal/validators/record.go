package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldTitle          = "title"
	FieldUsername       = "username"
	FieldSecret         = "secret"
	FieldURL            = "url"
	FieldNotes          = "notes"
	FieldRecordID       = "id"
	FieldOwnerID        = "owner_id"
	FieldSecretEnvelope = "secret_envelope"
	FieldFilter         = "filter"
)

// Length limits in characters.
const (
	MaxTitleLength    = 100
	MaxUsernameLength = 255
	MaxSecretLength   = 500
	MaxURLLength      = 500
	MaxNotesLength    = 1000
	MaxFilterLength   = 100
)

// RecordValidator implements [Validator] for vault record models:
// RecordDraft, VaultRecord and ListQuery, as values or pointers.
type RecordValidator struct {
}

// NewRecordValidator constructs a new RecordValidator and returns it as the
// Validator interface.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches on the dynamic type of obj. Optional fields restrict
// validation to the named subset; when omitted, every field of the type is
// checked.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecordDraft:
		return v.validateDraft(value, fields...)
	case *models.RecordDraft:
		return v.validateDraft(*value, fields...)

	case models.VaultRecord:
		return v.validateRecord(value, fields...)
	case *models.VaultRecord:
		return v.validateRecord(*value, fields...)

	case models.ListQuery:
		return v.validateListQuery(value, fields...)
	case *models.ListQuery:
		return v.validateListQuery(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateDraft(draft models.RecordDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldUsername, FieldSecret, FieldURL, FieldNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(draft.Title); err != nil {
				return err
			}
		case FieldUsername:
			if err := validateOptional(draft.Username, MaxUsernameLength, ErrUsernameTooLong); err != nil {
				return err
			}
		case FieldSecret:
			if draft.Secret == "" {
				return ErrEmptySecret
			}
			if err := validateLength(draft.Secret, MaxSecretLength, ErrSecretTooLong); err != nil {
				return err
			}
		case FieldURL:
			if err := validateOptional(draft.URL, MaxURLLength, ErrURLTooLong); err != nil {
				return err
			}
		case FieldNotes:
			if err := validateOptional(draft.Notes, MaxNotesLength, ErrNotesTooLong); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateRecord(record models.VaultRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordID, FieldOwnerID, FieldTitle, FieldUsername, FieldSecretEnvelope, FieldURL, FieldNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordID:
			if !utils.IsValidID(record.ID) {
				return ErrInvalidRecordID
			}
		case FieldOwnerID:
			if strings.TrimSpace(record.OwnerID) == "" {
				return ErrInvalidOwnerID
			}
		case FieldTitle:
			if err := validateTitle(record.Title); err != nil {
				return err
			}
		case FieldUsername:
			if err := validateOptional(record.Username, MaxUsernameLength, ErrUsernameTooLong); err != nil {
				return err
			}
		case FieldSecretEnvelope:
			if record.SecretEnvelope == "" {
				return ErrEmptyEnvelope
			}
		case FieldURL:
			if err := validateOptional(record.URL, MaxURLLength, ErrURLTooLong); err != nil {
				return err
			}
		case FieldNotes:
			if err := validateOptional(record.Notes, MaxNotesLength, ErrNotesTooLong); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateListQuery(query models.ListQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFilter}
	}

	for _, f := range fields {
		switch f {
		case FieldFilter:
			if err := validateLength(query.Filter, MaxFilterLength, ErrFilterTooLong); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return validateLength(title, MaxTitleLength, ErrTitleTooLong)
}

func validateOptional(value *string, limit int, tooLong error) error {
	if value == nil {
		return nil
	}
	return validateLength(*value, limit, tooLong)
}

// validateLength counts characters, not bytes.
func validateLength(value string, limit int, tooLong error) error {
	if !utf8.ValidString(value) {
		return ErrInvalidEncoding
	}
	if utf8.RuneCountInString(value) > limit {
		return tooLong
	}
	return nil
}
