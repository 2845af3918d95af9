package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout. A token from the configuration is installed right away.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(adapterCfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
// A value carrying the "Bearer " prefix is accepted too.
func (h *httpServerAdapter) SetToken(token string) {
	token = strings.TrimSpace(token)
	if parsed, err := utils.ParseBearerToken(token); err == nil {
		token = parsed
	}
	h.token = token
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Generate implements [ServerAdapter] via POST /api/secrets/generate.
func (h *httpServerAdapter) Generate(ctx context.Context, policy models.GenerationPolicy) (models.GenerateResponse, error) {
	var result models.GenerateResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(policy).
		SetResult(&result).
		Post("/api/secrets/generate")
	if err != nil {
		return models.GenerateResponse{}, fmt.Errorf("generate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GenerateResponse{}, err
	}

	return result, nil
}

// Create implements [ServerAdapter] via POST /api/records.
func (h *httpServerAdapter) Create(ctx context.Context, draft models.RecordDraft) (models.VaultRecord, error) {
	var record models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		SetResult(&record).
		Post("/api/records")
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("create request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return record, nil
}

// List implements [ServerAdapter] via GET /api/records?q=.
func (h *httpServerAdapter) List(ctx context.Context, query models.ListQuery) ([]models.VaultRecord, error) {
	var records []models.VaultRecord

	req := h.authedRequest(ctx).SetResult(&records)
	if query.Filter != "" {
		req.SetQueryParam("q", query.Filter)
	}

	resp, err := req.Get("/api/records")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if records == nil {
		records = []models.VaultRecord{}
	}
	return records, nil
}

// Reveal implements [ServerAdapter] via POST /api/records/{id}/reveal.
func (h *httpServerAdapter) Reveal(ctx context.Context, id string) (string, error) {
	var result models.RevealResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetResult(&result).
		Post("/api/records/{id}/reveal")
	if err != nil {
		return "", fmt.Errorf("reveal request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return result.Secret, nil
}

// Update implements [ServerAdapter] via PUT /api/records/{id}.
func (h *httpServerAdapter) Update(ctx context.Context, id string, draft models.RecordDraft) (models.VaultRecord, error) {
	var record models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(draft).
		SetResult(&record).
		Put("/api/records/{id}")
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return record, nil
}

// Delete implements [ServerAdapter] via DELETE /api/records/{id}.
func (h *httpServerAdapter) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete("/api/records/{id}")
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

// Export implements [ServerAdapter] via POST /api/records/export.
func (h *httpServerAdapter) Export(ctx context.Context) (models.ExportResponse, error) {
	var result models.ExportResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Post("/api/records/export")
	if err != nil {
		return models.ExportResponse{}, fmt.Errorf("export request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ExportResponse{}, err
	}

	return result, nil
}

// Version implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
