package app

import (
	"crypto/tls"
	"net/http"

	"github.com/sirupsen/logrus"

	"ciphergate/internal/domain"
	"ciphergate/internal/protocol/handshake"
	"ciphergate/internal/protocol/signature"
	"ciphergate/internal/relay"
	"ciphergate/internal/server"
	"ciphergate/internal/services/access"
	chatsvc "ciphergate/internal/services/chat"
	identitysvc "ciphergate/internal/services/identity"
	messagesvc "ciphergate/internal/services/message"
	sessionsvc "ciphergate/internal/services/session"
	"ciphergate/internal/store"
)

// Server bundles the server-role dependency graph.
type Server struct {
	Config   Config
	Registry *store.KeyRegistry
	Cache    *store.SecretCache // nil unless secret_cache_ttl > 0
	Exchange *handshake.Manager
	Sessions domain.HandshakeService
	HTTP     *server.Server
	Log      logrus.FieldLogger
}

// NewServer validates cfg, builds the graph and creates the server
// exchange keypair.
func NewServer(cfg Config, log logrus.FieldLogger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	registry := store.NewKeyRegistry()
	opts := []handshake.Option{
		handshake.WithKeyDerivation(cfg.KeyDerivation),
		handshake.WithLogger(log),
	}
	var cache *store.SecretCache
	if cfg.SecretCacheTTL > 0 {
		cache = store.NewSecretCache(cfg.SecretCacheTTL)
		opts = append(opts, handshake.WithSecretCache(cache))
	}

	exchange := handshake.NewManager(registry, opts...)
	if err := exchange.CreateKeypair(); err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, err
	}

	auth := signature.NewAuthenticator(registry, log)
	sessions := sessionsvc.New(registry, auth, exchange, log)
	policy := access.New(cfg.PublicResources, auth, exchange, log)

	httpSrv := server.New(sessions, policy, chatsvc.New(),
		server.WithCORSOrigin(cfg.CORSOrigin),
		server.WithReadiness(exchange.Ready),
		server.WithLogger(log),
	)

	return &Server{
		Config:   cfg,
		Registry: registry,
		Cache:    cache,
		Exchange: exchange,
		Sessions: sessions,
		HTTP:     httpSrv,
		Log:      log,
	}, nil
}

// HTTPServer returns the net/http server for the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.Config.Listen,
		Handler:           s.HTTP.Handler(),
		ReadTimeout:       s.Config.ReadTimeout,
		ReadHeaderTimeout: s.Config.ReadTimeout,
	}
}

// Close releases the secret cache, if any.
func (s *Server) Close() error {
	if s.Cache != nil {
		return s.Cache.Close()
	}
	return nil
}

// Client bundles the client-role dependency graph.
type Client struct {
	Config   ClientConfig
	Identity *identitysvc.Service
	Relay    *relay.HTTP
	Messages *messagesvc.Service
	HTTP     *http.Client
}

// NewClient validates cfg and builds the graph. No keys are generated until
// the first handshake.
func NewClient(cfg ClientConfig, log logrus.FieldLogger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	ids := identitysvc.New(cfg.RSABits, cfg.KeyDerivation)
	rc := relay.NewHTTP(cfg.Server, httpClient)
	return &Client{
		Config:   cfg,
		Identity: ids,
		Relay:    rc,
		Messages: messagesvc.New(ids, rc, log),
		HTTP:     httpClient,
	}, nil
}
