// Package app loads configuration and wires application dependencies for
// both binaries.
//
// NewServer builds the key registry, handshake manager, authenticator and
// services behind the HTTP server from a Config. NewClient builds the client
// identity, relay client and message service from a ClientConfig.
package app
