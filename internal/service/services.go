package service

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/generator"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

type Services struct {
	VaultService   VaultService
	BackupService  BackupService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices builds the secret engine (generator, key deriver, cipher) from
// cfg and wires it to the storages. The pepper is copied into a memguard
// enclave; the config string is left as is.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	gen, err := generator.NewGenerator(generator.WithLengthBounds(cfg.Engine.MinLength, cfg.Engine.MaxLength))
	if err != nil {
		return nil, fmt.Errorf("error creating secret generator: %w", err)
	}

	deriver, err := crypto.NewKeyDeriver([]byte(cfg.App.Pepper), cfg.App.KDFContext, crypto.Argon2Params{
		Time:    cfg.Engine.ArgonTime,
		Memory:  cfg.Engine.ArgonMemory,
		Threads: cfg.Engine.ArgonThreads,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating key deriver: %w", err)
	}

	cipher, err := crypto.NewSecretCipher(crypto.EnvelopeVersion(cfg.Engine.EnvelopeVersion))
	if err != nil {
		return nil, fmt.Errorf("error creating secret cipher: %w", err)
	}

	vaultService := NewVaultValidationService().Wrap(
		NewVaultService(storages.VaultRecords, gen, deriver, cipher, logger),
	)

	logger.Info().
		Int("envelope_version", cfg.Engine.EnvelopeVersion).
		Bool("backups", storages.Backups != nil).
		Msg("services created")

	return &Services{
		VaultService:   vaultService,
		BackupService:  NewBackupService(storages.VaultRecords, storages.Backups, logger),
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: NewAppInfoService(cfg.App, buildInfo, logger),
	}, nil
}
