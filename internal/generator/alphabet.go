package generator

import (
	"strings"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Character classes available to a [models.GenerationPolicy].
const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	NumberChars    = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// AmbiguousChars are removed when ExcludeAmbiguous is set.
	AmbiguousChars = "il1Lo0O"
)

// Alphabet returns the characters a secret generated under policy is drawn
// from: the union of the enabled classes, minus [AmbiguousChars] when
// requested. The result is never empty when err is nil.
func Alphabet(policy models.GenerationPolicy) (string, error) {
	var b strings.Builder

	if policy.IncludeUppercase {
		b.WriteString(UppercaseChars)
	}
	if policy.IncludeLowercase {
		b.WriteString(LowercaseChars)
	}
	if policy.IncludeNumbers {
		b.WriteString(NumberChars)
	}
	if policy.IncludeSymbols {
		b.WriteString(SymbolChars)
	}

	alphabet := b.String()
	if policy.ExcludeAmbiguous {
		alphabet = strings.Map(func(r rune) rune {
			if strings.ContainsRune(AmbiguousChars, r) {
				return -1
			}
			return r
		}, alphabet)
	}

	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}

	return alphabet, nil
}
