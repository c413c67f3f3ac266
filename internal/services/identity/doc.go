// Package identity holds the client's key material.
//
// One process owns one RSA signing key and one P-256 exchange keypair, both
// generated by Generate on first use and never persisted. The exchange side
// also remembers the server key imported from the last handshake.
package identity
