package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolicy is the parent of every policy violation.
	ErrInvalidPolicy = errors.New("invalid generation policy")

	// ErrEmptyAlphabet is returned when no character class is enabled or
	// ambiguous-character exclusion leaves nothing to draw from.
	ErrEmptyAlphabet = fmt.Errorf("%w: select at least one character type", ErrInvalidPolicy)

	// ErrInvalidLength is returned when the requested length is outside the
	// accepted bounds.
	ErrInvalidLength = fmt.Errorf("%w: length is out of accepted range", ErrInvalidPolicy)

	// ErrInvalidBounds is returned by [NewGenerator] for unusable length bounds.
	ErrInvalidBounds = errors.New("invalid generator length bounds")

	// ErrEntropy is returned when the random source fails to deliver bytes.
	ErrEntropy = errors.New("secure random source failed")
)
