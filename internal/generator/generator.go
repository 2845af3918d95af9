// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package generator

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Length bounds applied when no [WithLengthBounds] option is given.
const (
	DefaultMinLength = 8
	DefaultMaxLength = 64

	// hardMaxLength caps configurable bounds so a misconfigured deployment
	// cannot be asked for arbitrarily large allocations.
	hardMaxLength = 1024
)

// drawSize is the number of bytes consumed from the source per draw.
const drawSize = 4

// Generator produces random secrets under a [models.GenerationPolicy].
type Generator struct {
	source    io.Reader
	minLength int
	maxLength int
}

// Option configures a [Generator].
type Option func(*Generator)

// WithSource replaces the random source. It exists for tests; production
// code must keep the default crypto/rand reader.
func WithSource(source io.Reader) Option {
	return func(g *Generator) {
		g.source = source
	}
}

// WithLengthBounds sets the inclusive range of accepted secret lengths.
func WithLengthBounds(minLength, maxLength int) Option {
	return func(g *Generator) {
		g.minLength = minLength
		g.maxLength = maxLength
	}
}

// NewGenerator constructs a [Generator] reading from crypto/rand with the
// default [DefaultMinLength]..[DefaultMaxLength] bounds unless overridden.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		source:    rand.Reader,
		minLength: DefaultMinLength,
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.source == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidBounds)
	}
	if g.minLength < 1 || g.maxLength < g.minLength || g.maxLength > hardMaxLength {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidBounds, g.minLength, g.maxLength)
	}

	return g, nil
}

// Bounds returns the inclusive range of accepted lengths.
func (g *Generator) Bounds() (minLength, maxLength int) {
	return g.minLength, g.maxLength
}

// Generate returns a secret of policy.Length characters drawn uniformly from
// [Alphabet](policy). On error no partial secret is returned.
func (g *Generator) Generate(policy models.GenerationPolicy) (string, error) {
	alphabet, err := g.validate(policy)
	if err != nil {
		return "", err
	}

	out := make([]byte, policy.Length)
	for i := range out {
		idx, err := g.uniformIndex(uint32(len(alphabet)))
		if err != nil {
			memguard.WipeBytes(out)
			return "", err
		}
		out[i] = alphabet[idx]
	}

	secret := string(out)
	memguard.WipeBytes(out)

	return secret, nil
}

// Strength reports the entropy of a secret generated under policy, in bits:
// length * log2(|alphabet|).
func (g *Generator) Strength(policy models.GenerationPolicy) (float64, error) {
	alphabet, err := g.validate(policy)
	if err != nil {
		return 0, err
	}

	return float64(policy.Length) * math.Log2(float64(len(alphabet))), nil
}

func (g *Generator) validate(policy models.GenerationPolicy) (string, error) {
	alphabet, err := Alphabet(policy)
	if err != nil {
		return "", err
	}

	if policy.Length < g.minLength || policy.Length > g.maxLength {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidLength, policy.Length, g.minLength, g.maxLength)
	}

	return alphabet, nil
}

// uniformIndex returns an index in [0, n) with every value equally likely.
//
// A 32-bit draw v is accepted only if v < limit, where limit is the largest
// multiple of n not exceeding 2^32. Accepted values are then reduced modulo
// n, which is unbiased because [0, limit) holds the same count of every
// residue.
func (g *Generator) uniformIndex(n uint32) (uint32, error) {
	const space = uint64(1) << 32
	limit := space - space%uint64(n)

	var buf [drawSize]byte
	for {
		if _, err := io.ReadFull(g.source, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrEntropy, err)
		}

		v := binary.BigEndian.Uint32(buf[:])
		if uint64(v) < limit {
			return v % n, nil
		}
	}
}
