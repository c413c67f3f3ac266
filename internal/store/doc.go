// Package store provides the in-memory state of ciphergate's server role.
//
// Nothing here touches disk: every record lives for the lifetime of the
// process and is lost on restart, after which peers must handshake again.
// All methods are concurrency-safe via internal locking.
//
// The package includes:
//   - Peer public keys by (key class, session) (KeyRegistry)
//   - Derived shared secrets with a TTL, used only when enabled (SecretCache)
package store
