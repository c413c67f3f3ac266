package types

// KeyRecord is one registered peer public key.
//
// At most one record exists per (Class, SessionID); a newer registration
// replaces the older one wholesale.
type KeyRecord struct {
	Class     KeyClass  `json:"class"`
	SessionID SessionID `json:"session_id"`
	PublicKey []byte    `json:"public_key"`
}

// KeyDerivation names how the raw ECDH output becomes the AES-256 key.
type KeyDerivation string

const (
	// KeyDerivationRaw uses the 32-byte ECDH x-coordinate directly.
	KeyDerivationRaw KeyDerivation = "raw"
	// KeyDerivationHKDF expands the ECDH output with HKDF-SHA256.
	KeyDerivationHKDF KeyDerivation = "hkdf-sha256"
)

// String returns the string form of the derivation mode.
func (d KeyDerivation) String() string { return string(d) }
