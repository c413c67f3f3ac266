package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"ciphergate/internal/app"
	"ciphergate/internal/domain"
	"ciphergate/internal/logging"
)

var (
	configPath string
	serverURL  string
	kdf        string
	insecure   bool
	logLevel   string
	timeout    time.Duration

	appCtx *app.Client
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "ciphergate",
		Short:         "End-to-end encrypted chat client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadClientConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("server") {
				cfg.Server = serverURL
			}
			if flags.Changed("key-derivation") {
				cfg.KeyDerivation = domain.KeyDerivation(kdf)
			}
			if flags.Changed("insecure") {
				cfg.InsecureSkipVerify = insecure
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}

			log, err := logging.New(cfg.LogLevel, logging.FormatText, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx, err = app.NewClient(cfg, log)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "client config file (YAML)")
	pf.StringVar(&serverURL, "server", "", "server base URL (default https://localhost:8443)")
	pf.StringVar(&kdf, "key-derivation", "", "raw or hkdf-sha256; must match the server")
	pf.BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")
	pf.StringVar(&logLevel, "log-level", "", "log level (default warning)")
	pf.DurationVar(&timeout, "timeout", 0, "per-request timeout (default 10s)")

	root.AddCommand(handshakeCmd(), sendCmd(), chatCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return root.ExecuteContext(ctx)
}

// handshake runs a handshake bounded by ctx.
func handshake(ctx context.Context) (domain.HandshakeResult, error) {
	return appCtx.Messages.Handshake(ctx)
}
