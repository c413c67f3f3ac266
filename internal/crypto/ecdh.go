package crypto

import (
	"crypto/ecdh"
	"crypto/rand"
	"fmt"
)

// P256PublicKeySize is the length of an uncompressed P-256 point.
const P256PublicKeySize = 65

// GenerateP256 returns a fresh P-256 key exchange private key.
func GenerateP256() (*ecdh.PrivateKey, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate p256 key: %w", err)
	}
	return priv, nil
}

// ParseP256Public parses an uncompressed P-256 point. Points not on the curve
// and the point at infinity are rejected.
func ParseP256Public(raw []byte) (*ecdh.PublicKey, error) {
	pub, err := ecdh.P256().NewPublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parse p256 public key: %w", err)
	}
	return pub, nil
}

// DH computes P-256 Diffie–Hellman between priv and the raw peer point.
// The result is the 32-byte x-coordinate of the shared point.
func DH(priv *ecdh.PrivateKey, peer []byte) ([]byte, error) {
	pub, err := ParseP256Public(peer)
	if err != nil {
		return nil, err
	}
	secret, err := priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("p256 ecdh: %w", err)
	}
	return secret, nil
}
