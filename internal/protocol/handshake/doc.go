// Package handshake implements the ECDH half of the ciphergate key exchange
// for both peer roles.
//
// # Roles
//
// Server (Manager): one long-lived P-256 keypair reused for every session,
// plus one registered peer exchange key per SessionID in a KeyRegistry. Its
// public half is a stable identity; per-peer secrecy still holds because the
// ECDH output depends on the peer's key too.
//
// Client (Initiator): one keypair per process and the single server key it
// imported from the handshake response.
//
// # Lifecycle
//
//	UNINITIALIZED --CreateKeypair--> READY
//	NO_PEER_KEY --RegisterPeerKey--> PEER_KEY_REGISTERED   (per session)
//
// CreateKeypair is idempotent. RotateKeypair is the only way to replace the
// keypair; every existing session becomes undecryptable and must handshake
// again.
//
// # Shared secrets
//
// DeriveSharedSecret recomputes ECDH on every call and applies the configured
// key derivation. A Manager built with WithSecretCache consults the cache
// first; cache entries are keyed by keypair epoch and peer key fingerprint, so
// a re-registered peer key or a rotation can never serve a stale secret.
//
// # Errors
//
// KindNotInitialized before CreateKeypair, KindPeerKeyNotRegistered when no
// exchange key exists for the session, KindKeyExchange when the registered
// peer key is not a valid P-256 point.
package handshake
