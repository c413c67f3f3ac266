package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ciphergate/internal/app"
	"ciphergate/internal/domain"
	"ciphergate/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		listen     string
		tlsCert    string
		tlsKey     string
		origin     string
		kdf        string
		cacheTTL   time.Duration
		logLevel   string
		logFormat  string
	)

	cmd := &cobra.Command{
		Use:          "ciphergated",
		Short:        "End-to-end encrypted chat server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.Listen = listen
			}
			if flags.Changed("tls-cert") {
				cfg.TLSCert = tlsCert
			}
			if flags.Changed("tls-key") {
				cfg.TLSKey = tlsKey
			}
			if flags.Changed("cors-origin") {
				cfg.CORSOrigin = origin
			}
			if flags.Changed("key-derivation") {
				cfg.KeyDerivation = domain.KeyDerivation(kdf)
			}
			if flags.Changed("secret-cache-ttl") {
				cfg.SecretCacheTTL = cacheTTL
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}

			log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, log)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "server config file (YAML)")
	f.StringVar(&listen, "listen", "", "listen address (default :8443)")
	f.StringVar(&tlsCert, "tls-cert", "", "TLS certificate file (PEM)")
	f.StringVar(&tlsKey, "tls-key", "", "TLS private key file (PEM)")
	f.StringVar(&origin, "cors-origin", "", "allowed CORS origin (default https://localhost)")
	f.StringVar(&kdf, "key-derivation", "", "raw or hkdf-sha256")
	f.DurationVar(&cacheTTL, "secret-cache-ttl", 0, "cache derived secrets for this long (0 disables)")
	f.StringVar(&logLevel, "log-level", "", "log level (default info)")
	f.StringVar(&logFormat, "log-format", "", "text or json")
	return cmd
}

func run(ctx context.Context, cfg app.Config, log *logrus.Logger) error {
	srv, err := app.NewServer(cfg, log)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpSrv := srv.HTTPServer()
	errc := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"function": "run",
			"addr":     cfg.Listen,
			"tls":      cfg.TLS(),
			"kdf":      cfg.KeyDerivation,
		}).Info("ciphergated listening")
		if cfg.TLS() {
			errc <- httpSrv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			errc <- httpSrv.ListenAndServe()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(stop)
	defer signal.Stop(hup)

	for {
		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-hup:
			if err := srv.Exchange.RotateKeypair(); err != nil {
				log.WithError(err).Error("Keypair rotation failed")
			}
		case <-stop:
			return shutdown(httpSrv, log)
		case <-ctx.Done():
			return shutdown(httpSrv, log)
		}
	}
}

func shutdown(httpSrv *http.Server, log logrus.FieldLogger) error {
	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}
