package handshake

import (
	"crypto/ecdh"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

var (
	errNotInitialized = domain.NewError(domain.KindNotInitialized, "exchange keypair not initialized")
	errNoPeerKey      = domain.NewError(domain.KindPeerKeyNotRegistered, "peer exchange key not registered")
)

// Manager is the server-role Handshake Manager.
type Manager struct {
	registry domain.KeyRegistry
	cache    domain.SecretCache
	kdf      domain.KeyDerivation
	log      logrus.FieldLogger

	mu    sync.RWMutex
	priv  *ecdh.PrivateKey
	epoch uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithSecretCache makes DeriveSharedSecret consult c before recomputing.
func WithSecretCache(c domain.SecretCache) Option {
	return func(m *Manager) { m.cache = c }
}

// WithKeyDerivation selects how the raw ECDH output becomes the AES key.
func WithKeyDerivation(mode domain.KeyDerivation) Option {
	return func(m *Manager) { m.kdf = mode }
}

// WithLogger sets the logger. The default is the standard logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager returns an UNINITIALIZED Manager storing peer keys in registry.
func NewManager(registry domain.KeyRegistry, opts ...Option) *Manager {
	m := &Manager{
		registry: registry,
		kdf:      domain.KeyDerivationRaw,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateKeypair generates the server exchange keypair. Calling it again once
// READY keeps the current keypair.
func (m *Manager) CreateKeypair() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.priv != nil {
		return nil
	}
	return m.generateLocked()
}

// RotateKeypair replaces the server exchange keypair. Every session
// registered so far can no longer decrypt and must handshake again.
func (m *Manager) RotateKeypair() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.generateLocked(); err != nil {
		return err
	}
	if m.cache != nil {
		m.cache.Purge()
	}
	ecdhRotateCounter.Inc()
	return nil
}

func (m *Manager) generateLocked() error {
	priv, err := crypto.GenerateP256()
	if err != nil {
		// Entropy failure is not retryable.
		return err
	}
	m.priv = priv
	m.epoch++
	m.log.WithFields(logrus.Fields{
		"function":    "CreateKeypair",
		"epoch":       m.epoch,
		"fingerprint": crypto.Fingerprint(priv.PublicKey().Bytes()),
	}).Info("Server exchange keypair ready")
	return nil
}

// Ready reports whether the keypair exists.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.priv != nil
}

// ExportPublicKey returns the uncompressed server public point.
func (m *Manager) ExportPublicKey() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.priv == nil {
		return nil, errNotInitialized
	}
	return m.priv.PublicKey().Bytes(), nil
}

// RegisterPeerKey stores the peer's exchange key for id. The key is
// validated lazily by DeriveSharedSecret.
func (m *Manager) RegisterPeerKey(id domain.SessionID, peerPublicKey []byte) {
	if m.cache != nil {
		if old, ok := m.registry.Lookup(domain.KeyClassExchange, id); ok {
			m.mu.RLock()
			m.cache.Invalidate(m.cacheKey(id, old))
			m.mu.RUnlock()
		}
	}
	m.registry.Register(domain.KeyClassExchange, id, peerPublicKey)

	m.log.WithFields(logrus.Fields{
		"function":    "RegisterPeerKey",
		"session":     id,
		"fingerprint": crypto.Fingerprint(peerPublicKey),
	}).Debug("Registered peer exchange key")
}

// DeriveSharedSecret computes the AES-256 key shared with session id.
func (m *Manager) DeriveSharedSecret(id domain.SessionID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.priv == nil {
		return nil, errNotInitialized
	}
	peer, ok := m.registry.Lookup(domain.KeyClassExchange, id)
	if !ok {
		return nil, errNoPeerKey
	}

	var key domain.SessionID
	if m.cache != nil {
		key = m.cacheKey(id, peer)
		if secret, hit := m.cache.Get(key); hit {
			ecdhCacheHitCounter.Inc()
			return secret, nil
		}
	}

	secret, err := derive(m.priv, peer, m.kdf)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"function": "DeriveSharedSecret",
			"session":  id,
		}).Warn("Peer exchange key rejected")
		return nil, err
	}
	if m.cache != nil {
		m.cache.Put(key, secret)
	}
	return secret, nil
}

// cacheKey binds a cache entry to the keypair epoch and the peer key, so
// neither a rotation nor a re-registration can be served a stale secret.
// Callers hold m.mu.
func (m *Manager) cacheKey(id domain.SessionID, peer []byte) domain.SessionID {
	return domain.SessionID(fmt.Sprintf("%s:%d:%s", id, m.epoch, crypto.Fingerprint(peer)))
}

// derive runs ECDH and the key derivation, classifying failures.
func derive(priv *ecdh.PrivateKey, peer []byte, kdf domain.KeyDerivation) ([]byte, error) {
	ecdhDeriveCounter.Inc()

	shared, err := crypto.DH(priv, peer)
	if err != nil {
		return nil, domain.WrapError(domain.KindKeyExchange, "invalid peer exchange key", err)
	}
	defer crypto.Wipe(shared)

	secret, err := crypto.DeriveKey(kdf, shared)
	if err != nil {
		return nil, domain.WrapError(domain.KindKeyExchange, "derive shared key", err)
	}
	return secret, nil
}

// Compile-time assertion that Manager implements domain.ExchangeService.
var _ domain.ExchangeService = (*Manager)(nil)
