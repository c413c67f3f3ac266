package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

const (
	// TagSize is the GCM authentication tag length.
	TagSize = 16
	// IVSize is the per-message initialization vector length.
	IVSize = 16
	// Overhead is the fixed trailer every envelope carries.
	Overhead = TagSize + IVSize
)

var (
	errShort = domain.NewError(domain.KindMalformedEnvelope, "envelope shorter than tag and iv")
	errAuth  = domain.NewError(domain.KindAuthenticationFailed, "envelope authentication failed")
)

// rng is the IV source.
var rng io.Reader = rand.Reader

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != crypto.SharedKeySize {
		return nil, fmt.Errorf("aes key is %d bytes, want %d", len(key), crypto.SharedKeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}
	return cipher.NewGCMWithNonceSize(block, IVSize)
}

// Seal encrypts plaintext under key with a fresh random IV.
func Seal(plaintext, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rng, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// Seal appends ciphertext||tag; the iv goes last.
	out := gcm.Seal(make([]byte, 0, len(plaintext)+Overhead), iv, plaintext, nil)
	out = append(out, iv...)
	sealCounter.Inc()
	return crypto.B64(out), nil
}

// Open decrypts an envelope produced by Seal.
func Open(env string, key []byte) ([]byte, error) {
	raw, err := crypto.DecodeB64(env)
	if err != nil {
		return nil, domain.WrapError(domain.KindMalformedEnvelope, "envelope is not base64", err)
	}
	if len(raw) < Overhead {
		return nil, errShort
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	openCounter.Inc()
	split := len(raw) - IVSize
	plaintext, err := gcm.Open(nil, raw[split:], raw[:split], nil)
	if err != nil {
		authFailCounter.Inc()
		return nil, errAuth
	}
	return plaintext, nil
}

// Encrypt serializes v as JSON and seals it under key.
func Encrypt(v any, key []byte) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	defer crypto.Wipe(plaintext)
	return Seal(plaintext, key)
}

// Decrypt opens env under key and deserializes the JSON plaintext into out.
func Decrypt(env string, key []byte, out any) error {
	plaintext, err := Open(env, key)
	if err != nil {
		return err
	}
	defer crypto.Wipe(plaintext)
	if err := json.Unmarshal(plaintext, out); err != nil {
		return domain.WrapError(domain.KindDecode, "decode payload", err)
	}
	return nil
}
