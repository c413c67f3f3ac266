// Package crypto exposes the minimal primitives used by ciphergate.
//
// Contents
//
//   - P-256 key generation, public key parsing and Diffie–Hellman
//     (GenerateP256, ParseP256Public, DH)
//   - RSA key generation, SPKI encoding, PKCS#1 v1.5 SHA-256 signing and
//     verification (GenerateRSA, MarshalRSAPublic, ParseRSAPublic, SignRSA,
//     VerifyRSA)
//   - Turning an ECDH output into an AES-256 key (DeriveKey)
//   - Base64 helpers matching the browser and Node peers (B64, DecodeB64)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Errors returned here are plain; the protocol packages classify them into
// domain error kinds. Callers should treat returned secrets as sensitive and
// rely on Wipe when practical to reduce lifetime in memory.
package crypto
