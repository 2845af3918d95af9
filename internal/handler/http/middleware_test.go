package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// ── getTokenFromAuthHeader ──────────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "bearer", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "lowercase scheme", header: "bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "surrounding spaces", header: "  Bearer   tok  ", wantToken: "tok"},
		{name: "scheme only", header: "Bearer", wantErr: ErrEmptyToken},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "token without scheme", header: "eyJhbGciOi", wantErr: ErrInvalidAuthorizationHeader},
		{name: "extra parts", header: "Bearer a b", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ── withTraceID ─────────────────────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	known := uuid.NewString()

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "valid id is reused", incoming: known, reuse: true},
		{name: "missing id is generated"},
		{name: "junk id is replaced", incoming: "<script>alert(1)</script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxLogger *zerolog.Logger
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = zerolog.Ctx(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			require.NoError(t, uuid.Validate(got))
			if tt.reuse {
				assert.Equal(t, known, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
			}
			require.NotNil(t, ctxLogger)
		})
	}
}

func TestWithTraceID_LogsTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), `"trace_id":"`+rec.Header().Get(traceIDHeader)+`"`)
}

// ── withLogging ─────────────────────────────────────────────────────────────

func TestWithLogging_UsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	h := &Handler{logger: logger.Nop()}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
		})
	}, h.withLogging)
	router.Get("/api/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("12345"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/secret-looking-id", nil))

	out := buf.String()
	assert.Contains(t, out, `"route":"/api/records/{id}"`)
	assert.NotContains(t, out, "secret-looking-id")
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"size":5`)
}

// ── responseWriter ──────────────────────────────────────────────────────────

func TestResponseWriter(t *testing.T) {
	t.Run("first status wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		rw.WriteHeader(http.StatusCreated)
		rw.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusCreated, rw.status)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("write implies 200 and counts bytes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		_, _ = rw.Write([]byte("hello "))
		_, _ = rw.Write([]byte("world"))

		assert.Equal(t, http.StatusOK, rw.status)
		assert.Equal(t, 11, rw.size)
		assert.Equal(t, "hello world", rec.Body.String())
		assert.Same(t, rec, rw.Unwrap())
	})
}

// ── withGZip ────────────────────────────────────────────────────────────────

func TestWithGZip(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"title":"GitHub"}`), 50)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write(body)
	})

	t.Run("plain in, plain out", func(t *testing.T) {
		rec := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload)))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, rec.Body.Bytes())
	})

	t.Run("gzip in, gzip out", func(t *testing.T) {
		var compressed bytes.Buffer
		zw := gzip.NewWriter(&compressed)
		_, _ = zw.Write(payload)
		require.NoError(t, zw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &compressed)
		req.Header.Set("Content-Encoding", "gzip")
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rec := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
		assert.Less(t, rec.Body.Len(), len(payload))

		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("broken gzip body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not gzip")))
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
				req.Header.Set("Accept-Encoding", "gzip")
				rec := httptest.NewRecorder()
				withGZip(echo).ServeHTTP(rec, req)

				zr, err := gzip.NewReader(rec.Body)
				if assert.NoError(t, err) {
					got, _ := io.ReadAll(zr)
					assert.Equal(t, payload, got)
				}
			}()
		}
		wg.Wait()
	})
}

func TestWrappedReadCloser_CloseOnce(t *testing.T) {
	calls := 0
	rc := &wrappedReadCloser{Reader: bytes.NewReader(nil), OnClose: func() { calls++ }}

	require.NoError(t, rc.Close())
	require.NoError(t, rc.Close())
	assert.Equal(t, 1, calls)
}

// ── withNoStore ─────────────────────────────────────────────────────────────

func TestWithNoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	withNoStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
}

// ── identity ────────────────────────────────────────────────────────────────

func TestIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := identity(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.WithIdentity(context.Background(), testOwner))
	owner, ok := identity(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, testOwner, owner)
}

// ── CheckHTTPMethod ─────────────────────────────────────────────────────────

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodPost, http.StatusNotFound},
		{http.MethodDelete, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, "/items/42", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
