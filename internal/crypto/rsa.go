package crypto

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
)

// MinRSABits is the smallest modulus accepted for generated keys.
const MinRSABits = 2048

var errNotRSA = errors.New("public key is not RSA")

// GenerateRSA returns a new RSA signing key.
func GenerateRSA(bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSABits {
		return nil, fmt.Errorf("rsa modulus %d below minimum %d", bits, MinRSABits)
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa key: %w", err)
	}
	return priv, nil
}

// MarshalRSAPublic encodes pub as SPKI DER, the form WebCrypto exports.
func MarshalRSAPublic(pub *rsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pub)
}

// ParseRSAPublic decodes an SPKI DER RSA public key.
func ParseRSAPublic(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse spki: %w", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errNotRSA
	}
	return pub, nil
}

// SignRSA signs SHA-256(msg) with RSASSA-PKCS1-v1_5.
func SignRSA(priv *rsa.PrivateKey, msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	return rsa.SignPKCS1v15(rand.Reader, priv, stdcrypto.SHA256, digest[:])
}

// VerifyRSA verifies an RSASSA-PKCS1-v1_5 SHA-256 signature over msg.
func VerifyRSA(pub *rsa.PublicKey, msg, sig []byte) bool {
	digest := sha256.Sum256(msg)
	return rsa.VerifyPKCS1v15(pub, stdcrypto.SHA256, digest[:], sig) == nil
}
