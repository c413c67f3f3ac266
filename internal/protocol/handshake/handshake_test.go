package handshake_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
	"ciphergate/internal/protocol/handshake"
	"ciphergate/internal/store"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newServer returns a READY Manager and the registry behind it.
func newServer(t *testing.T, opts ...handshake.Option) (*handshake.Manager, *store.KeyRegistry) {
	t.Helper()
	reg := store.NewKeyRegistry()
	m := handshake.NewManager(reg, append([]handshake.Option{handshake.WithLogger(quietLogger())}, opts...)...)
	if err := m.CreateKeypair(); err != nil {
		t.Fatalf("CreateKeypair: %v", err)
	}
	return m, reg
}

// newClient returns a READY Initiator.
func newClient(t *testing.T, kdf domain.KeyDerivation) *handshake.Initiator {
	t.Helper()
	c := handshake.NewInitiator(kdf)
	if err := c.CreateKeypair(); err != nil {
		t.Fatalf("CreateKeypair: %v", err)
	}
	return c
}

func TestManager_NotInitialized(t *testing.T) {
	m := handshake.NewManager(store.NewKeyRegistry(), handshake.WithLogger(quietLogger()))
	if m.Ready() {
		t.Fatal("fresh manager reports READY")
	}
	if _, err := m.ExportPublicKey(); !domain.IsKind(err, domain.KindNotInitialized) {
		t.Fatalf("ExportPublicKey: want KindNotInitialized, got %v", err)
	}
	m.RegisterPeerKey("s1", []byte("whatever"))
	if _, err := m.DeriveSharedSecret("s1"); !domain.IsKind(err, domain.KindNotInitialized) {
		t.Fatalf("DeriveSharedSecret: want KindNotInitialized, got %v", err)
	}
}

func TestManager_CreateKeypairIsIdempotent(t *testing.T) {
	m, _ := newServer(t)
	first, err := m.ExportPublicKey()
	if err != nil {
		t.Fatalf("ExportPublicKey: %v", err)
	}
	if err := m.CreateKeypair(); err != nil {
		t.Fatalf("second CreateKeypair: %v", err)
	}
	second, _ := m.ExportPublicKey()
	if !bytes.Equal(first, second) {
		t.Fatal("CreateKeypair on a READY manager replaced the key")
	}
	if len(first) != crypto.P256PublicKeySize {
		t.Fatalf("public key is %d bytes", len(first))
	}
}

func TestManager_PeerKeyNotRegistered(t *testing.T) {
	m, _ := newServer(t)
	if _, err := m.DeriveSharedSecret("unknown"); !domain.IsKind(err, domain.KindPeerKeyNotRegistered) {
		t.Fatalf("want KindPeerKeyNotRegistered, got %v", err)
	}
}

func TestManager_InvalidPeerPointFailsLazily(t *testing.T) {
	m, reg := newServer(t)
	m.RegisterPeerKey("s1", bytes.Repeat([]byte{0x04}, crypto.P256PublicKeySize))

	if _, ok := reg.Lookup(domain.KeyClassExchange, "s1"); !ok {
		t.Fatal("registration must succeed regardless of key validity")
	}
	if _, err := m.DeriveSharedSecret("s1"); !domain.IsKind(err, domain.KindKeyExchange) {
		t.Fatalf("want KindKeyExchange, got %v", err)
	}
}

func TestBothRolesDeriveSameSecret(t *testing.T) {
	for _, kdf := range []domain.KeyDerivation{domain.KeyDerivationRaw, domain.KeyDerivationHKDF} {
		t.Run(kdf.String(), func(t *testing.T) {
			server, _ := newServer(t, handshake.WithKeyDerivation(kdf))
			client := newClient(t, kdf)

			clientPub, err := client.ExportPublicKey()
			if err != nil {
				t.Fatalf("client ExportPublicKey: %v", err)
			}
			server.RegisterPeerKey("s1", clientPub)

			serverPub, err := server.ExportPublicKey()
			if err != nil {
				t.Fatalf("server ExportPublicKey: %v", err)
			}
			client.RegisterServerKey(serverPub)

			a, err := server.DeriveSharedSecret("s1")
			if err != nil {
				t.Fatalf("server derive: %v", err)
			}
			b, err := client.DeriveSharedSecret()
			if err != nil {
				t.Fatalf("client derive: %v", err)
			}
			if !bytes.Equal(a, b) {
				t.Fatal("roles derived different secrets")
			}
			if len(a) != crypto.SharedKeySize {
				t.Fatalf("secret is %d bytes", len(a))
			}
		})
	}
}

func TestManager_CrossPairIndependence(t *testing.T) {
	server, _ := newServer(t)
	alice := newClient(t, domain.KeyDerivationRaw)
	bob := newClient(t, domain.KeyDerivationRaw)

	ak, _ := alice.ExportPublicKey()
	bk, _ := bob.ExportPublicKey()
	server.RegisterPeerKey("A", ak)
	server.RegisterPeerKey("B", bk)

	sa, err := server.DeriveSharedSecret("A")
	if err != nil {
		t.Fatalf("derive A: %v", err)
	}
	sb, err := server.DeriveSharedSecret("B")
	if err != nil {
		t.Fatalf("derive B: %v", err)
	}
	if bytes.Equal(sa, sb) {
		t.Fatal("different peers produced the same secret under one server keypair")
	}
}

func TestManager_RecomputesWithoutCache(t *testing.T) {
	server, _ := newServer(t)
	client := newClient(t, domain.KeyDerivationRaw)
	pk, _ := client.ExportPublicKey()
	server.RegisterPeerKey("s1", pk)

	a, _ := server.DeriveSharedSecret("s1")
	a[0] ^= 0xff // caller mutation must not leak into the next call
	b, _ := server.DeriveSharedSecret("s1")
	if bytes.Equal(a, b) {
		t.Fatal("secret slice shared between calls")
	}
}

func TestManager_ReRegisterSwitchesSecret(t *testing.T) {
	for _, withCache := range []bool{false, true} {
		var opts []handshake.Option
		if withCache {
			cache := store.NewSecretCache(time.Minute)
			t.Cleanup(func() { _ = cache.Close() })
			opts = append(opts, handshake.WithSecretCache(cache))
		}
		server, _ := newServer(t, opts...)

		first := newClient(t, domain.KeyDerivationRaw)
		second := newClient(t, domain.KeyDerivationRaw)
		fk, _ := first.ExportPublicKey()
		sk, _ := second.ExportPublicKey()
		serverPub, _ := server.ExportPublicKey()
		second.RegisterServerKey(serverPub)

		server.RegisterPeerKey("s1", fk)
		if _, err := server.DeriveSharedSecret("s1"); err != nil {
			t.Fatalf("derive: %v", err)
		}
		server.RegisterPeerKey("s1", sk)

		got, err := server.DeriveSharedSecret("s1")
		if err != nil {
			t.Fatalf("derive after re-register: %v", err)
		}
		want, _ := second.DeriveSharedSecret()
		if !bytes.Equal(got, want) {
			t.Fatalf("cache=%v: stale secret after re-registration", withCache)
		}
	}
}

func TestManager_RotateInvalidatesSessions(t *testing.T) {
	cache := store.NewSecretCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	server, _ := newServer(t, handshake.WithSecretCache(cache))

	client := newClient(t, domain.KeyDerivationRaw)
	pk, _ := client.ExportPublicKey()
	server.RegisterPeerKey("s1", pk)
	before, _ := server.DeriveSharedSecret("s1")
	oldPub, _ := server.ExportPublicKey()

	if err := server.RotateKeypair(); err != nil {
		t.Fatalf("RotateKeypair: %v", err)
	}
	newPub, _ := server.ExportPublicKey()
	if bytes.Equal(oldPub, newPub) {
		t.Fatal("rotation kept the public key")
	}
	after, err := server.DeriveSharedSecret("s1")
	if err != nil {
		t.Fatalf("derive after rotation: %v", err)
	}
	if bytes.Equal(before, after) {
		t.Fatal("rotation served the old secret")
	}
}

func TestInitiator_States(t *testing.T) {
	c := handshake.NewInitiator("")
	if _, err := c.ExportPublicKey(); !domain.IsKind(err, domain.KindNotInitialized) {
		t.Fatalf("want KindNotInitialized, got %v", err)
	}
	if _, err := c.DeriveSharedSecret(); !domain.IsKind(err, domain.KindNotInitialized) {
		t.Fatalf("want KindNotInitialized, got %v", err)
	}
	if err := c.CreateKeypair(); err != nil {
		t.Fatalf("CreateKeypair: %v", err)
	}
	if _, err := c.DeriveSharedSecret(); !domain.IsKind(err, domain.KindPeerKeyNotRegistered) {
		t.Fatalf("want KindPeerKeyNotRegistered, got %v", err)
	}

	server, _ := newServer(t)
	sp, _ := server.ExportPublicKey()
	c.RegisterServerKey(sp)
	if !c.HasServerKey() {
		t.Fatal("server key not remembered")
	}

	if err := c.RotateKeypair(); err != nil {
		t.Fatalf("RotateKeypair: %v", err)
	}
	if c.HasServerKey() {
		t.Fatal("rotation must forget the server key")
	}
}
