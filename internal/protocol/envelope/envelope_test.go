package envelope_test

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
	"ciphergate/internal/protocol/envelope"
	"ciphergate/internal/protocol/handshake"
	"ciphergate/internal/store"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, crypto.SharedKeySize)
	_, err := rand.Read(k)
	require.NoError(t, err)
	return k
}

func TestRoundTrip(t *testing.T) {
	key := testKey(t)
	payloads := []any{
		map[string]any{"x": float64(1)},
		map[string]any{"content": "hello", "nested": map[string]any{"ok": true}},
		[]any{"a", "b"},
		"",
	}
	for _, p := range payloads {
		env, err := envelope.Encrypt(p, key)
		require.NoError(t, err)

		var got any
		require.NoError(t, envelope.Decrypt(env, key, &got))
		assert.Equal(t, p, got)
	}
}

func TestSealOpenEmptyPlaintext(t *testing.T) {
	key := testKey(t)
	env, err := envelope.Seal(nil, key)
	require.NoError(t, err)

	raw, err := crypto.DecodeB64(env)
	require.NoError(t, err)
	assert.Len(t, raw, envelope.Overhead)

	pt, err := envelope.Open(env, key)
	require.NoError(t, err)
	assert.Empty(t, pt)
}

func TestTamperEveryBit(t *testing.T) {
	key := testKey(t)
	env, err := envelope.Encrypt(map[string]int{"x": 1}, key)
	require.NoError(t, err)
	raw, err := crypto.DecodeB64(env)
	require.NoError(t, err)

	// Every bit of ciphertext and tag; the iv is tampered below.
	for i := 0; i < len(raw)-envelope.IVSize; i++ {
		for bit := 0; bit < 8; bit++ {
			mut := append([]byte(nil), raw...)
			mut[i] ^= 1 << bit
			_, err := envelope.Open(crypto.B64(mut), key)
			if !domain.IsKind(err, domain.KindAuthenticationFailed) {
				t.Fatalf("byte %d bit %d: want KindAuthenticationFailed, got %v", i, bit, err)
			}
		}
	}

	mut := append([]byte(nil), raw...)
	mut[len(mut)-1] ^= 0x01
	_, err = envelope.Open(crypto.B64(mut), key)
	assert.True(t, domain.IsKind(err, domain.KindAuthenticationFailed))
}

func TestWrongKey(t *testing.T) {
	env, err := envelope.Seal([]byte("secret"), testKey(t))
	require.NoError(t, err)
	_, err = envelope.Open(env, testKey(t))
	assert.True(t, domain.IsKind(err, domain.KindAuthenticationFailed))
}

func TestIVUniqueness(t *testing.T) {
	key := testKey(t)
	a, err := envelope.Seal([]byte(`{"x":1}`), key)
	require.NoError(t, err)
	b, err := envelope.Seal([]byte(`{"x":1}`), key)
	require.NoError(t, err)

	ra, _ := crypto.DecodeB64(a)
	rb, _ := crypto.DecodeB64(b)
	require.Equal(t, len(ra), len(rb))

	ivA, ivB := ra[len(ra)-envelope.IVSize:], rb[len(rb)-envelope.IVSize:]
	ctA, ctB := ra[:len(ra)-envelope.Overhead], rb[:len(rb)-envelope.Overhead]
	assert.False(t, bytes.Equal(ivA, ivB), "iv repeated")
	assert.False(t, bytes.Equal(ctA, ctB), "ciphertext repeated")
}

func TestMalformedEnvelope(t *testing.T) {
	key := testKey(t)
	cases := map[string]string{
		"not base64": "%%%",
		"empty":      "",
		"31 bytes":   crypto.B64(make([]byte, envelope.Overhead-1)),
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := envelope.Open(env, key)
			assert.True(t, domain.IsKind(err, domain.KindMalformedEnvelope), "got %v", err)
		})
	}
}

func TestDecodeErrorIsDistinct(t *testing.T) {
	key := testKey(t)
	env, err := envelope.Seal([]byte("not json"), key)
	require.NoError(t, err)

	var out map[string]any
	err = envelope.Decrypt(env, key, &out)
	assert.True(t, domain.IsKind(err, domain.KindDecode))
	assert.False(t, domain.IsKind(err, domain.KindAuthenticationFailed))
}

func TestBadKeySize(t *testing.T) {
	_, err := envelope.Seal([]byte("x"), make([]byte, 16))
	assert.Error(t, err)
	assert.Zero(t, domain.KindOf(err))
}

// A client and server that exchanged keys agree on {"x":1}.
func TestHandshakeScenario(t *testing.T) {
	server := handshake.NewManager(store.NewKeyRegistry())
	require.NoError(t, server.CreateKeypair())
	client := handshake.NewInitiator(domain.KeyDerivationRaw)
	require.NoError(t, client.CreateKeypair())

	clientPub, err := client.ExportPublicKey()
	require.NoError(t, err)
	server.RegisterPeerKey("S1", clientPub)
	serverPub, err := server.ExportPublicKey()
	require.NoError(t, err)
	client.RegisterServerKey(serverPub)

	clientKey, err := client.DeriveSharedSecret()
	require.NoError(t, err)
	env, err := envelope.Encrypt(map[string]int{"x": 1}, clientKey)
	require.NoError(t, err)

	serverKey, err := server.DeriveSharedSecret("S1")
	require.NoError(t, err)
	var got json.RawMessage
	require.NoError(t, envelope.Decrypt(env, serverKey, &got))
	assert.JSONEq(t, `{"x":1}`, string(got))
}
