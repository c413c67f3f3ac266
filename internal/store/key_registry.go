package store

import (
	"sync"

	"ciphergate/internal/domain"
)

type registryKey struct {
	class domain.KeyClass
	id    domain.SessionID
}

// KeyRegistry maps (key class, session) to a peer's raw public key bytes.
//
// Writes replace the whole record under the lock, so a reader sees either the
// old key or the new one, never a mix. Stored and returned slices are copies.
type KeyRegistry struct {
	mu   sync.RWMutex
	keys map[registryKey][]byte
}

// NewKeyRegistry returns an empty KeyRegistry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{keys: make(map[registryKey][]byte)}
}

// Register stores publicKey for (class, id), replacing any existing record.
func (r *KeyRegistry) Register(class domain.KeyClass, id domain.SessionID, publicKey []byte) {
	pk := append([]byte(nil), publicKey...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[registryKey{class, id}] = pk
}

// Lookup returns the key registered for (class, id).
func (r *KeyRegistry) Lookup(class domain.KeyClass, id domain.SessionID) ([]byte, bool) {
	r.mu.RLock()
	pk, ok := r.keys[registryKey{class, id}]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return append([]byte(nil), pk...), true
}

// Revoke removes the record for (class, id) if present.
func (r *KeyRegistry) Revoke(class domain.KeyClass, id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, registryKey{class, id})
}

// Len returns the number of records across both classes.
func (r *KeyRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Compile-time assertion that KeyRegistry implements domain.KeyRegistry.
var _ domain.KeyRegistry = (*KeyRegistry)(nil)
