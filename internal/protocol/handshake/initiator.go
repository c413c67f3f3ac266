package handshake

import (
	"crypto/ecdh"
	"sync"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

var errNoServerKey = domain.NewError(domain.KindPeerKeyNotRegistered, "server exchange key not registered")

// Initiator is the client-role Handshake Manager: one keypair per process and
// the counterparty key imported from the handshake response.
type Initiator struct {
	kdf domain.KeyDerivation

	mu     sync.RWMutex
	priv   *ecdh.PrivateKey
	server []byte
}

// NewInitiator returns an UNINITIALIZED Initiator using kdf for derived keys.
func NewInitiator(kdf domain.KeyDerivation) *Initiator {
	if kdf == "" {
		kdf = domain.KeyDerivationRaw
	}
	return &Initiator{kdf: kdf}
}

// CreateKeypair generates the client keypair once; later calls are no-ops.
func (i *Initiator) CreateKeypair() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.priv != nil {
		return nil
	}
	priv, err := crypto.GenerateP256()
	if err != nil {
		return err
	}
	i.priv = priv
	return nil
}

// RotateKeypair replaces the client keypair and forgets the server key, so
// the caller must handshake again.
func (i *Initiator) RotateKeypair() error {
	priv, err := crypto.GenerateP256()
	if err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.priv = priv
	i.server = nil
	return nil
}

// ExportPublicKey returns the uncompressed client public point.
func (i *Initiator) ExportPublicKey() ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.priv == nil {
		return nil, errNotInitialized
	}
	return i.priv.PublicKey().Bytes(), nil
}

// RegisterServerKey remembers the server's exchange public key, replacing a
// previously imported one.
func (i *Initiator) RegisterServerKey(serverPublicKey []byte) {
	pk := append([]byte(nil), serverPublicKey...)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.server = pk
}

// HasServerKey reports whether a server key was imported.
func (i *Initiator) HasServerKey() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.server != nil
}

// DeriveSharedSecret computes the AES-256 key shared with the server.
func (i *Initiator) DeriveSharedSecret() ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.priv == nil {
		return nil, errNotInitialized
	}
	if i.server == nil {
		return nil, errNoServerKey
	}
	return derive(i.priv, i.server, i.kdf)
}
