package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"ciphergate/internal/domain"
)

// SharedKeySize is the AES-256 key length.
const SharedKeySize = 32

const hkdfInfo = "ciphergate-aes-256-gcm"

// DeriveKey turns a raw ECDH output into the AES-256 key for mode.
//
// KeyDerivationRaw (or empty) returns a copy of shared; it must already be
// SharedKeySize long. KeyDerivationHKDF expands shared with HKDF-SHA256.
func DeriveKey(mode domain.KeyDerivation, shared []byte) ([]byte, error) {
	switch mode {
	case "", domain.KeyDerivationRaw:
		if len(shared) != SharedKeySize {
			return nil, fmt.Errorf("raw shared secret is %d bytes, want %d", len(shared), SharedKeySize)
		}
		return append([]byte(nil), shared...), nil
	case domain.KeyDerivationHKDF:
		out := make([]byte, SharedKeySize)
		if _, err := io.ReadFull(hkdf.New(sha256.New, shared, nil, []byte(hkdfInfo)), out); err != nil {
			return nil, fmt.Errorf("hkdf expand: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown key derivation %q", mode)
	}
}

// ValidKeyDerivation reports whether mode is supported.
func ValidKeyDerivation(mode domain.KeyDerivation) bool {
	switch mode {
	case "", domain.KeyDerivationRaw, domain.KeyDerivationHKDF:
		return true
	}
	return false
}
