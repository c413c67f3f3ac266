// Package signature implements the RSA half of the ciphergate protocol.
//
// The server role (Authenticator) mints a SessionID for every registered
// signature key and verifies RSASSA-PKCS1-v1_5 / SHA-256 signatures against
// it. The client role (Signer) owns one signing keypair and signs the raw
// request body, which for private routes is the encrypted envelope string.
//
// Verify never fails on a mismatched signature; it returns false. Errors are
// reserved for an unknown session (KindPeerKeyNotRegistered) and for key
// material that does not parse (KindMalformedKey).
package signature
