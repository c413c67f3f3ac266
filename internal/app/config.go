package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

// Config holds the server's runtime options.
type Config struct {
	Listen          string               `yaml:"listen"`
	TLSCert         string               `yaml:"tls_cert"`
	TLSKey          string               `yaml:"tls_key"`
	PublicResources []string             `yaml:"public_resources"`
	CORSOrigin      string               `yaml:"cors_origin"`
	KeyDerivation   domain.KeyDerivation `yaml:"key_derivation"`
	SecretCacheTTL  time.Duration        `yaml:"secret_cache_ttl"` // 0 recomputes per request
	LogLevel        string               `yaml:"log_level"`
	LogFormat       string               `yaml:"log_format"`
	ReadTimeout     time.Duration        `yaml:"read_timeout"`
}

// ClientConfig holds the client's runtime options.
type ClientConfig struct {
	Server             string               `yaml:"server"` // base URL, e.g. https://localhost:8443
	Timeout            time.Duration        `yaml:"timeout"`
	KeyDerivation      domain.KeyDerivation `yaml:"key_derivation"`
	RSABits            int                  `yaml:"rsa_bits"`
	InsecureSkipVerify bool                 `yaml:"insecure_skip_verify"` // self-signed dev servers
	LogLevel           string               `yaml:"log_level"`
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		Listen:          ":8443",
		PublicResources: []string{"/handshake", "/healthz", "/metrics"},
		CORSOrigin:      "https://localhost",
		KeyDerivation:   domain.KeyDerivationRaw,
		LogLevel:        "info",
		LogFormat:       "text",
		ReadTimeout:     15 * time.Second,
	}
}

// DefaultClientConfig returns the client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Server:        "https://localhost:8443",
		Timeout:       10 * time.Second,
		KeyDerivation: domain.KeyDerivationRaw,
		RSABits:       crypto.MinRSABits,
		LogLevel:      "warning",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := loadYAML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadClientConfig reads path over the client defaults.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()
	if err := loadYAML(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func loadYAML(path string, out any) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	if !crypto.ValidKeyDerivation(c.KeyDerivation) {
		return fmt.Errorf("unknown key_derivation %q", c.KeyDerivation)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls_cert and tls_key must be set together")
	}
	if c.SecretCacheTTL < 0 {
		return errors.New("secret_cache_ttl must not be negative")
	}
	if c.ReadTimeout < 0 {
		return errors.New("read_timeout must not be negative")
	}
	return nil
}

// TLS reports whether the server should serve HTTPS.
func (c Config) TLS() bool { return c.TLSCert != "" }

// Validate reports the first invalid option.
func (c ClientConfig) Validate() error {
	if c.Server == "" {
		return errors.New("server URL is empty")
	}
	if !crypto.ValidKeyDerivation(c.KeyDerivation) {
		return fmt.Errorf("unknown key_derivation %q", c.KeyDerivation)
	}
	if c.RSABits < crypto.MinRSABits {
		return fmt.Errorf("rsa_bits %d below minimum %d", c.RSABits, crypto.MinRSABits)
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}
