// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

const testToken = "header.payload.signature"

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *httpServerAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    srv.URL,
		RequestTimeout: 5 * time.Second,
		Token:          testToken,
	}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func assertBearer(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
}

// ── Generate ────────────────────────────────────────────────────────────────

func TestGenerate_Success(t *testing.T) {
	policy := models.DefaultGenerationPolicy()

	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/secrets/generate", r.URL.Path)
		assertBearer(t, r)

		var got models.GenerationPolicy
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, policy, got)

		writeJSON(t, w, http.StatusOK, models.GenerateResponse{Secret: "s3cr3t!", Length: 7, EntropyBits: 45.2})
	})

	got, err := a.Generate(context.Background(), policy)

	require.NoError(t, err)
	assert.Equal(t, "s3cr3t!", got.Secret)
	assert.Equal(t, 7, got.Length)
}

func TestGenerate_BadRequest(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{Error: "select at least one character type"})
	})

	_, err := a.Generate(context.Background(), models.GenerationPolicy{Length: 12})

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "select at least one character type")
}

// ── Create ──────────────────────────────────────────────────────────────────

func TestCreate_Success(t *testing.T) {
	draft := models.RecordDraft{Title: "mail", Secret: "hunter2"}

	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/records", r.URL.Path)
		assertBearer(t, r)

		var got models.RecordDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, draft, got)

		writeJSON(t, w, http.StatusCreated, models.VaultRecord{ID: "rec-1", Title: "mail"})
	})

	got, err := a.Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "rec-1", got.ID)
	assert.Empty(t, got.SecretEnvelope)
}

func TestCreate_Unauthorized(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := a.Create(context.Background(), models.RecordDraft{})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── List ────────────────────────────────────────────────────────────────────

func TestList_WithFilter(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/records", r.URL.Path)
		assert.Equal(t, "git hub", r.URL.Query().Get("q"))
		writeJSON(t, w, http.StatusOK, []models.VaultRecord{{ID: "a"}, {ID: "b"}})
	})

	got, err := a.List(context.Background(), models.ListQuery{Filter: "git hub"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}

func TestList_EmptyNeverNil(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("q"))
		writeJSON(t, w, http.StatusOK, []models.VaultRecord{})
	})

	got, err := a.List(context.Background(), models.ListQuery{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ── Reveal ──────────────────────────────────────────────────────────────────

func TestReveal_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/records/rec-1/reveal", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.RevealResponse{Secret: "hunter2"})
	})

	got, err := a.Reveal(context.Background(), "rec-1")

	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestReveal_UnableToDecrypt(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "unable to decrypt"})
	})

	got, err := a.Reveal(context.Background(), "rec-1")

	assert.ErrorIs(t, err, ErrUnableToDecrypt)
	assert.Empty(t, got)
}

// ── Update / Delete ─────────────────────────────────────────────────────────

func TestUpdate_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/records/rec-1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.VaultRecord{ID: "rec-1", Title: "renamed"})
	})

	got, err := a.Update(context.Background(), "rec-1", models.RecordDraft{Title: "renamed", Secret: "x"})

	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
}

func TestUpdate_NotFound(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "vault record was not found"})
	})

	_, err := a.Update(context.Background(), "rec-1", models.RecordDraft{})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/records/rec-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, a.Delete(context.Background(), "rec-1"))
}

func TestDelete_StoreUnavailable(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "store unavailable"})
	})

	assert.ErrorIs(t, a.Delete(context.Background(), "rec-1"), ErrServiceUnavailable)
}

// ── Export / Version ────────────────────────────────────────────────────────

func TestExport_Success(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/records/export", r.URL.Path)
		writeJSON(t, w, http.StatusCreated, models.ExportResponse{Object: "backups/alice/x.json", Records: 3, CreatedAt: created})
	})

	got, err := a.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "backups/alice/x.json", got.Object)
	assert.Equal(t, 3, got.Records)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestVersion_NoAuthHeader(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.NewAppBuildInfo("1.0.0", "", ""))
	})

	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, "N/A", got.Date)
}

// ── Token handling ──────────────────────────────────────────────────────────

func TestSetToken(t *testing.T) {
	a := &httpServerAdapter{}

	a.SetToken("  raw-token  ")
	assert.Equal(t, "raw-token", a.Token())

	a.SetToken("Bearer prefixed-token")
	assert.Equal(t, "prefixed-token", a.Token())

	a.SetToken("")
	assert.Empty(t, a.Token())
}

func TestNoTokenSendsNoAuthorization(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})
	a.SetToken("")

	_, err := a.List(context.Background(), models.ListQuery{})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "with scheme", raw: "https://vault.example.com/", want: "https://vault.example.com"},
		{name: "surrounding spaces", raw: "  127.0.0.1:9000 ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "scheme only", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	a, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())

	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage([]byte(`{"error":"boom"}`)))
	assert.Equal(t, "plain text", errorMessage([]byte("  plain text\n")))
	assert.Empty(t, errorMessage(nil))
}

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	err := a.Delete(context.Background(), "rec-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}
