package interfaces

import domaintypes "ciphergate/internal/domain/types"

// KeyRegistry holds peer public keys by (class, session).
type KeyRegistry interface {
	// Register upserts the key for the pair; it never fails.
	Register(class domaintypes.KeyClass, id domaintypes.SessionID, publicKey []byte)
	Lookup(class domaintypes.KeyClass, id domaintypes.SessionID) ([]byte, bool)
	// Revoke removes the record if present.
	Revoke(class domaintypes.KeyClass, id domaintypes.SessionID)
}

// SecretCache keeps derived shared secrets for a bounded time.
type SecretCache interface {
	Get(id domaintypes.SessionID) ([]byte, bool)
	Put(id domaintypes.SessionID, secret []byte)
	Invalidate(id domaintypes.SessionID)
	Purge()
}
