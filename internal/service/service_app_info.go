package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type appInfoService struct {
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService returns an AppInfoService reporting buildInfo. A version
// configured in cfg replaces a missing linker-injected one.
func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	if (buildInfo.Version == "" || buildInfo.Version == notAvailable) && cfg.Version != "" {
		buildInfo.Version = cfg.Version
	}
	if buildInfo.Version == "" {
		buildInfo.Version = notAvailable
	}

	return &appInfoService{
		buildInfo: buildInfo,
		logger:    logger,
	}
}

const notAvailable = "N/A"

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}
