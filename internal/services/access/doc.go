// Package access is the per-request gate in front of every private route.
//
// A request moves UNCHECKED -> ADMITTED -> AUTHENTICATED -> DECRYPTED, and
// may be rejected at each step:
//
//   - Admit: public resources pass; anything else needs a session header.
//   - Authenticate: both the session and signature headers are required
//     (400 otherwise); the signature covers the raw, still encrypted body.
//   - Decrypt: only for non-empty bodies, under the secret derived for the
//     declared session.
//
// Every failure is reported as a *Rejection carrying one of three outcomes.
// Failures an attacker can trigger (unknown session, bad signature, tampered
// or malformed envelope, bad peer point) all share one Forbidden body.
package access
