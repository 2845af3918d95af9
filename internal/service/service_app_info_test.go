package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ─────────────────────────────────────────────
// GetBuildInfo
// ─────────────────────────────────────────────

func TestAppInfoService_GetBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.App
		buildInfo   models.AppBuildInfo
		wantVersion string
	}{
		{
			name:        "linker version wins",
			cfg:         config.App{Version: "0.0.1"},
			buildInfo:   models.NewAppBuildInfo("1.2.3", "2026-03-01", "abc123"),
			wantVersion: "1.2.3",
		},
		{
			name:        "config fills missing build version",
			cfg:         config.App{Version: "2.5.1"},
			buildInfo:   models.NewAppBuildInfo("", "", ""),
			wantVersion: "2.5.1",
		},
		{
			name:        "nothing set",
			buildInfo:   models.AppBuildInfo{},
			wantVersion: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAppInfoService(tt.cfg, tt.buildInfo, logger.Nop())

			info := svc.GetBuildInfo(testContext())
			assert.Equal(t, tt.wantVersion, info.Version)
		})
	}
}

func TestAppInfoService_KeepsDateAndCommit(t *testing.T) {
	svc := NewAppInfoService(config.App{}, models.NewAppBuildInfo("1.0.0", "2026-03-01", "abc123"), logger.Nop())

	info := svc.GetBuildInfo(testContext())
	assert.Equal(t, "2026-03-01", info.Date)
	assert.Equal(t, "abc123", info.Commit)
}
