// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator produces random secrets from a character-class alphabet.
//
// Every output character is selected with a uniform index into the alphabet
// drawn from a cryptographically secure source. Raw 32-bit draws that fall
// into the tail of the range which the alphabet size does not divide evenly
// are rejected and redrawn, so every character has probability exactly
// 1/|alphabet|.
//
// A [Generator] holds no mutable state and is safe for concurrent use as long
// as its random source is (the default, crypto/rand.Reader, is).
package generator
