package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

type ClientServices struct {
	VaultService ClientVaultService
	AuthService  AuthService
}

func NewClientServices(serverAdapter adapter.ServerAdapter, clipboard ClipboardManager, cfg config.ClientConfig, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		VaultService: NewClientVaultService(serverAdapter, clipboard, cfg.Clipboard.ClearAfter, logger),
		AuthService: NewAuthService(config.App{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
		}, logger),
	}
}
