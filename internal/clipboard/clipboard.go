// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clipboard places revealed secrets on the system clipboard for a
// bounded time.
//
// Every copy is paired with a scheduled clear. A later copy cancels the
// earlier clear and schedules its own, so the most recent placement always
// governs when the clipboard is emptied.
package clipboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// DefaultClearAfter is how long a copied secret stays on the clipboard.
const DefaultClearAfter = 20 * time.Second

// ErrClipboardUnavailable wraps failures of the underlying clipboard.
var ErrClipboardUnavailable = errors.New("clipboard is unavailable")

// Writer is the clipboard sink.
type Writer interface {
	WriteAll(text string) error
}

// systemWriter writes to the OS clipboard through atotto/clipboard.
type systemWriter struct{}

func (systemWriter) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(text)
}

// System returns a [Writer] backed by the OS clipboard.
func System() Writer {
	return systemWriter{}
}

// Manager owns the clipboard exposure window.
type Manager struct {
	writer Writer
	logger *logger.Logger

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	done       chan struct{}
}

// NewManager constructs a [Manager] writing to w.
func NewManager(w Writer, log *logger.Logger) *Manager {
	return &Manager{
		writer: w,
		logger: log,
	}
}

// Copy writes text to the clipboard and schedules a clear after clearAfter
// (or [DefaultClearAfter] when clearAfter <= 0). Any clear scheduled by an
// earlier Copy is cancelled once the write succeeds; a failed write leaves
// the earlier exposure and its scheduled clear untouched.
//
// The returned channel is closed when this copy's exposure ends: the clear
// fired, [Manager.Clear] was called, or a later Copy superseded it.
func (m *Manager) Copy(text string, clearAfter time.Duration) (<-chan struct{}, error) {
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.writer.WriteAll(text); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}

	m.cancelLocked()

	m.generation++
	gen := m.generation
	done := make(chan struct{})
	m.done = done
	m.timer = time.AfterFunc(clearAfter, func() {
		m.expire(gen)
	})

	m.logger.Debug().Dur("clear_after", clearAfter).Msg("secret copied to clipboard")

	return done, nil
}

// Clear empties the clipboard immediately and cancels any pending clear.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	return m.clearLocked()
}

// Pending reports whether a scheduled clear has not fired yet.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.timer != nil
}

// expire runs on the timer goroutine. A generation mismatch means the copy
// it belongs to was superseded after the timer fired but before the lock
// was acquired.
func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		return
	}

	if err := m.clearLocked(); err != nil {
		m.logger.Err(err).Msg("failed to clear clipboard")
		return
	}
	m.logger.Debug().Msg("clipboard cleared")
}

func (m *Manager) clearLocked() error {
	m.cancelLocked()

	if err := m.writer.WriteAll(""); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}

	return nil
}

func (m *Manager) cancelLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}
