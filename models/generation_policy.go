// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// GenerationPolicy describes the constraints applied when generating a new
// random secret. At least one of the four class flags must be set.
type GenerationPolicy struct {
	// Length is the number of characters in the generated secret.
	Length int `json:"length"`

	IncludeUppercase bool `json:"include_uppercase"`
	IncludeLowercase bool `json:"include_lowercase"`
	IncludeNumbers   bool `json:"include_numbers"`
	IncludeSymbols   bool `json:"include_symbols"`

	// ExcludeAmbiguous removes look-alike characters (i, l, 1, L, o, 0, O)
	// from the alphabet.
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}

// DefaultGenerationPolicy returns the policy used when the caller does not
// specify one: 16 characters drawn from all four classes.
func DefaultGenerationPolicy() GenerationPolicy {
	return GenerationPolicy{
		Length:           16,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}
