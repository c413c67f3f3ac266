package types

// SessionID is the opaque token minted once per handshake by the server role.
// It joins the exchange and signature key records of one peer.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// KeyClass selects which of a peer's two public keys a record holds.
type KeyClass uint8

const (
	// KeyClassExchange is the peer's ECDH (P-256) public key.
	KeyClassExchange KeyClass = iota + 1
	// KeyClassSignature is the peer's RSA public key (SPKI DER).
	KeyClassSignature
)

// String returns the name of the key class.
func (c KeyClass) String() string {
	switch c {
	case KeyClassExchange:
		return "exchange"
	case KeyClassSignature:
		return "signature"
	default:
		return "unknown"
	}
}
