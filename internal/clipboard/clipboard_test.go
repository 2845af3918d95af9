package clipboard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

type fakeWriter struct {
	mu      sync.Mutex
	content string
	writes  []string
	err     error
}

func (f *fakeWriter) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.content = text
	f.writes = append(f.writes, text)
	return nil
}

func (f *fakeWriter) Content() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

func (f *fakeWriter) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func waitClosed(t *testing.T, ch <-chan struct{}, within time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(within):
		t.Fatalf("channel not closed within %s", within)
	}
}

func TestCopy_ClearsAfterTimeout(t *testing.T) {
	w := &fakeWriter{}
	m := NewManager(w, logger.Nop())

	done, err := m.Copy("s3cr3t", 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", w.Content())
	assert.True(t, m.Pending())

	waitClosed(t, done, time.Second)
	assert.Equal(t, "", w.Content())
	assert.False(t, m.Pending())
}

func TestCopy_SupersedingCopyCancelsEarlierClear(t *testing.T) {
	w := &fakeWriter{}
	m := NewManager(w, logger.Nop())

	first, err := m.Copy("first", 30*time.Millisecond)
	require.NoError(t, err)

	second, err := m.Copy("second", 300*time.Millisecond)
	require.NoError(t, err)

	// The first exposure ends as soon as it is superseded.
	waitClosed(t, first, 10*time.Millisecond)

	// Past the first deadline the second secret must still be present.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "second", w.Content())

	waitClosed(t, second, time.Second)
	assert.Equal(t, "", w.Content())
}

func TestCopy_DefaultTimeout(t *testing.T) {
	w := &fakeWriter{}
	m := NewManager(w, logger.Nop())

	_, err := m.Copy("x", 0)
	require.NoError(t, err)
	assert.True(t, m.Pending())

	require.NoError(t, m.Clear())
}

func TestClear_Immediate(t *testing.T) {
	w := &fakeWriter{}
	m := NewManager(w, logger.Nop())

	done, err := m.Copy("s3cr3t", time.Hour)
	require.NoError(t, err)

	require.NoError(t, m.Clear())
	waitClosed(t, done, 10*time.Millisecond)
	assert.Equal(t, "", w.Content())
	assert.False(t, m.Pending())
}

func TestCopy_WriterFailure(t *testing.T) {
	w := &fakeWriter{err: errors.New("no display")}
	m := NewManager(w, logger.Nop())

	done, err := m.Copy("s3cr3t", time.Second)
	require.ErrorIs(t, err, ErrClipboardUnavailable)
	assert.Nil(t, done)
	assert.False(t, m.Pending())
}

func TestCopy_FailedCopyKeepsEarlierClearScheduled(t *testing.T) {
	w := &fakeWriter{}
	m := NewManager(w, logger.Nop())

	first, err := m.Copy("first-secret", 50*time.Millisecond)
	require.NoError(t, err)

	w.SetErr(errors.New("clipboard busy"))
	second, err := m.Copy("second-secret", 50*time.Millisecond)
	require.ErrorIs(t, err, ErrClipboardUnavailable)
	assert.Nil(t, second)

	// The earlier exposure is still owned by its timer.
	assert.True(t, m.Pending())
	select {
	case <-first:
		t.Fatal("earlier exposure ended by a failed copy")
	default:
	}

	w.SetErr(nil)
	waitClosed(t, first, time.Second)
	assert.Equal(t, "", w.Content())
	assert.False(t, m.Pending())
}

func TestCopy_ConcurrentCopiesLeaveClipboardEmpty(t *testing.T) {
	w := &fakeWriter{}
	m := NewManager(w, logger.Nop())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Copy("secret", 20*time.Millisecond)
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return !m.Pending() && w.Content() == ""
	}, time.Second, 5*time.Millisecond)
}
