package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pass-vault/internal/client"
	"github.com/MKhiriev/go-pass-vault/internal/clipboard"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("vaultctl", os.Getenv("VAULTCTL_LOG_FILE"))

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(*cfg,
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		clipboard.System(), os.Stdin, os.Stdout, log)

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		log.Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}
