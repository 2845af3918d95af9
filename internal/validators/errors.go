package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle      = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title is too long")
	ErrUsernameTooLong = errors.New("username is too long")
	ErrEmptySecret     = errors.New("secret is required")
	ErrSecretTooLong   = errors.New("secret is too long")
	ErrURLTooLong      = errors.New("url is too long")
	ErrNotesTooLong    = errors.New("notes are too long")
	ErrInvalidRecordID = errors.New("invalid record id")
	ErrInvalidOwnerID  = errors.New("invalid owner id")
	ErrEmptyEnvelope   = errors.New("secret envelope is required")
	ErrFilterTooLong   = errors.New("filter is too long")
	ErrInvalidEncoding = errors.New("text must be valid UTF-8")
)
