package store

import (
	"time"

	"github.com/Velocidex/ttlcache/v2"

	"ciphergate/internal/domain"
)

const defaultSecretCacheSize = 10000

// SecretCache keeps derived shared secrets for ttl after their last use.
type SecretCache struct {
	lru *ttlcache.Cache
}

// NewSecretCache returns a cache whose entries expire after ttl.
func NewSecretCache(ttl time.Duration) *SecretCache {
	c := &SecretCache{lru: ttlcache.NewCache()}
	c.lru.SetCacheSizeLimit(defaultSecretCacheSize)
	_ = c.lru.SetTTL(ttl)
	return c
}

// Get returns a copy of the cached secret for id.
func (c *SecretCache) Get(id domain.SessionID) ([]byte, bool) {
	v, err := c.lru.Get(id.String())
	if err != nil {
		return nil, false
	}
	secret, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), secret...), true
}

// Put caches a copy of secret for id.
func (c *SecretCache) Put(id domain.SessionID, secret []byte) {
	_ = c.lru.Set(id.String(), append([]byte(nil), secret...))
}

// Invalidate drops the entry for id.
func (c *SecretCache) Invalidate(id domain.SessionID) {
	_ = c.lru.Remove(id.String())
}

// Purge drops every entry.
func (c *SecretCache) Purge() {
	_ = c.lru.Purge()
}

// Close stops the expiry goroutine.
func (c *SecretCache) Close() error {
	return c.lru.Close()
}

// Compile-time assertion that SecretCache implements domain.SecretCache.
var _ domain.SecretCache = (*SecretCache)(nil)
