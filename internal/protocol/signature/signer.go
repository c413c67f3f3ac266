package signature

import (
	"crypto/rsa"

	"ciphergate/internal/crypto"
)

// Signer is the client-role signing identity.
type Signer struct {
	priv *rsa.PrivateKey
	der  []byte
}

// GenerateSigner creates a Signer with a fresh RSA key of the given size.
func GenerateSigner(bits int) (*Signer, error) {
	priv, err := crypto.GenerateRSA(bits)
	if err != nil {
		return nil, err
	}
	return NewSigner(priv)
}

// NewSigner wraps an existing RSA private key.
func NewSigner(priv *rsa.PrivateKey) (*Signer, error) {
	der, err := crypto.MarshalRSAPublic(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Signer{priv: priv, der: der}, nil
}

// PublicKeyDER returns the SPKI DER public key sent in the handshake.
func (s *Signer) PublicKeyDER() []byte { return append([]byte(nil), s.der...) }

// Sign signs message.
func (s *Signer) Sign(message []byte) ([]byte, error) {
	return Sign(s.priv, message)
}

// SignB64 signs message and returns the base64 form used in the
// X-Auth-Signature header.
func (s *Signer) SignB64(message []byte) (string, error) {
	sig, err := s.Sign(message)
	if err != nil {
		return "", err
	}
	return crypto.B64(sig), nil
}

// Sign produces an RSASSA-PKCS1-v1_5 / SHA-256 signature over message.
func Sign(priv *rsa.PrivateKey, message []byte) ([]byte, error) {
	rsaSignCounter.Inc()
	return crypto.SignRSA(priv, message)
}
