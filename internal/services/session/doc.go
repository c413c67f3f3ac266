// Package session runs the server side of the handshake.
//
// One Handshake call mints a SessionID through the signature authenticator,
// registers the peer's exchange key under the same identifier and returns
// the server's exchange public key. A request whose exchange key cannot be
// decoded leaves no record behind.
package session
