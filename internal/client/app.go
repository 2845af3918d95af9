package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/clipboard"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

// App is the vaultctl command tree. Services are built lazily, after flags
// have been applied to the configuration.
type App struct {
	cfg       config.ClientConfig
	buildInfo models.AppBuildInfo
	clipboard service.ClipboardManager

	out io.Writer
	in  io.Reader

	services *service.ClientServices

	// newServices is replaced in tests.
	newServices func(cfg config.ClientConfig, clipboard service.ClipboardManager, logger *logger.Logger) (*service.ClientServices, error)

	logger *logger.Logger
}

// NewApp returns an App writing command output to out and reading piped
// secrets from in.
func NewApp(cfg config.ClientConfig, buildInfo models.AppBuildInfo, w clipboard.Writer, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	return &App{
		cfg:         cfg,
		buildInfo:   buildInfo,
		clipboard:   clipboard.NewManager(w, logger),
		in:          in,
		out:         out,
		newServices: newClientServices,
		logger:      logger,
	}
}

func newClientServices(cfg config.ClientConfig, clipboard service.ClipboardManager, logger *logger.Logger) (*service.ClientServices, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	return service.NewClientServices(serverAdapter, clipboard, cfg, logger), nil
}

// Run executes args (without the program name).
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.command()
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

func (a *App) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "vaultctl",
		Short: "Client for the go-pass-vault secret vault",
		Long: `vaultctl stores credentials in a go-pass-vault server.

Secrets are encrypted on the server with a key derived from your identity and
a server-held pepper. Use "vaultctl token" to issue a development token when
you hold the server's token sign key.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.SetIn(a.in)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfg.Adapter.HTTPAddress, "address", "a", a.cfg.Adapter.HTTPAddress, "server address host:port or URL")
	flags.StringVar(&a.cfg.Adapter.Token, "token", a.cfg.Adapter.Token, "bearer token (env ADAPTER_TOKEN)")
	flags.DurationVar(&a.cfg.Adapter.RequestTimeout, "timeout", a.cfg.Adapter.RequestTimeout, "request timeout")
	flags.DurationVar(&a.cfg.Clipboard.ClearAfter, "clear-after", a.cfg.Clipboard.ClearAfter, "how long copied secrets stay on the clipboard")

	root.AddCommand(
		a.generateCommand(),
		a.addCommand(),
		a.listCommand(),
		a.revealCommand(),
		a.copyCommand(),
		a.updateCommand(),
		a.deleteCommand(),
		a.exportCommand(),
		a.tokenCommand(),
		a.versionCommand(),
	)

	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.services != nil {
		return nil
	}
	if a.cfg.Clipboard.ClearAfter <= 0 {
		a.cfg.Clipboard.ClearAfter = clipboard.DefaultClearAfter
	}
	if a.cfg.Adapter.RequestTimeout <= 0 {
		a.cfg.Adapter.RequestTimeout = config.DefaultRequestTimeout
	}

	services, err := a.newServices(a.cfg, a.clipboard, a.logger)
	if err != nil {
		return err
	}
	a.services = services
	return nil
}

// waitForClear blocks until the clipboard exposure ends. On cancellation the
// clipboard is cleared at once.
func (a *App) waitForClear(ctx context.Context, done <-chan struct{}) error {
	fmt.Fprintf(a.out, "Copied. Clipboard clears in %s.\n", a.cfg.Clipboard.ClearAfter.Round(time.Second))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		if err := a.clipboard.Clear(); err != nil {
			return fmt.Errorf("clear clipboard: %w", err)
		}
		fmt.Fprintln(a.out, "Clipboard cleared.")
		return nil
	}
}
