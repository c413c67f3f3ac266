package crypto_test

import (
	"bytes"
	"testing"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

func TestDH_BothSidesAgree(t *testing.T) {
	alice, err := crypto.GenerateP256()
	if err != nil {
		t.Fatalf("GenerateP256: %v", err)
	}
	bob, err := crypto.GenerateP256()
	if err != nil {
		t.Fatalf("GenerateP256: %v", err)
	}
	if n := len(alice.PublicKey().Bytes()); n != crypto.P256PublicKeySize {
		t.Fatalf("public key is %d bytes, want %d", n, crypto.P256PublicKeySize)
	}

	ab, err := crypto.DH(alice, bob.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("DH alice: %v", err)
	}
	ba, err := crypto.DH(bob, alice.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("DH bob: %v", err)
	}
	if !bytes.Equal(ab, ba) {
		t.Fatal("shared secrets differ")
	}
	if len(ab) != crypto.SharedKeySize {
		t.Fatalf("shared secret is %d bytes", len(ab))
	}
}

func TestDH_RejectsInvalidPoint(t *testing.T) {
	priv, err := crypto.GenerateP256()
	if err != nil {
		t.Fatalf("GenerateP256: %v", err)
	}
	bad := bytes.Repeat([]byte{0x04}, crypto.P256PublicKeySize)
	if _, err := crypto.DH(priv, bad); err == nil {
		t.Fatal("expected error for point not on curve")
	}
	if _, err := crypto.DH(priv, []byte("short")); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestRSA_SignVerify(t *testing.T) {
	priv, err := crypto.GenerateRSA(2048)
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}
	der, err := crypto.MarshalRSAPublic(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalRSAPublic: %v", err)
	}
	pub, err := crypto.ParseRSAPublic(der)
	if err != nil {
		t.Fatalf("ParseRSAPublic: %v", err)
	}

	msg := []byte("envelope")
	sig, err := crypto.SignRSA(priv, msg)
	if err != nil {
		t.Fatalf("SignRSA: %v", err)
	}
	if !crypto.VerifyRSA(pub, msg, sig) {
		t.Fatal("valid signature rejected")
	}
	if crypto.VerifyRSA(pub, []byte("envelopE"), sig) {
		t.Fatal("signature accepted for altered message")
	}

	again, err := crypto.SignRSA(priv, msg)
	if err != nil {
		t.Fatalf("SignRSA: %v", err)
	}
	if !bytes.Equal(sig, again) {
		t.Fatal("PKCS#1 v1.5 signatures should be deterministic")
	}
}

func TestRSA_RejectsSmallModulusAndNonRSA(t *testing.T) {
	if _, err := crypto.GenerateRSA(1024); err == nil {
		t.Fatal("expected error for 1024-bit modulus")
	}
	if _, err := crypto.ParseRSAPublic([]byte("not der")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDeriveKey(t *testing.T) {
	shared := bytes.Repeat([]byte{7}, crypto.SharedKeySize)

	raw, err := crypto.DeriveKey(domain.KeyDerivationRaw, shared)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if !bytes.Equal(raw, shared) {
		t.Fatal("raw mode must return the input")
	}
	raw[0] = 0
	if shared[0] != 7 {
		t.Fatal("raw mode must copy")
	}

	expanded, err := crypto.DeriveKey(domain.KeyDerivationHKDF, shared)
	if err != nil {
		t.Fatalf("hkdf: %v", err)
	}
	if len(expanded) != crypto.SharedKeySize || bytes.Equal(expanded, shared) {
		t.Fatal("hkdf output should be a different 32-byte key")
	}

	if _, err := crypto.DeriveKey("rot13", shared); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, err := crypto.DeriveKey(domain.KeyDerivationRaw, shared[:16]); err == nil {
		t.Fatal("expected error for short raw secret")
	}
}

func TestDecodeB64_PaddingOptional(t *testing.T) {
	want := []byte{1, 2, 3, 4}
	for _, in := range []string{crypto.B64(want), "AQIDBA", " AQIDBA== "} {
		got, err := crypto.DecodeB64(in)
		if err != nil {
			t.Fatalf("DecodeB64(%q): %v", in, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("DecodeB64(%q) = %v", in, got)
		}
	}
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	crypto.Wipe(b)
	if !bytes.Equal(b, []byte{0, 0, 0}) {
		t.Fatalf("not wiped: %v", b)
	}
}

func TestFingerprint_Stable(t *testing.T) {
	a := crypto.Fingerprint([]byte("key"))
	if len(a) != 20 || a != crypto.Fingerprint([]byte("key")) {
		t.Fatalf("unexpected fingerprint %q", a)
	}
}
