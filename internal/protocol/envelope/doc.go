// Package envelope implements the ciphergate symmetric envelope codec.
//
// Wire format, base64 (standard alphabet, padded) over:
//
//	ciphertext || tag (16 bytes) || iv (16 bytes)
//
// The cipher is AES-256-GCM with a 16-byte random IV per message, matching
// WebCrypto peers that use a 16-byte IV. No additional data is
// authenticated. Structured payloads are serialized as JSON.
//
// Open distinguishes a wire-format violation (KindMalformedEnvelope, checked
// before any crypto runs), a tag mismatch (KindAuthenticationFailed) and a
// plaintext that authenticated but did not deserialize (KindDecode).
package envelope
