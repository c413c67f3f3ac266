// Package commands defines the ciphergate client CLI.
//
// Commands
//
//   - handshake  Register fresh keys with the server and print the session
//   - send       Handshake, then encrypt and send one chat message
//   - chat       Handshake, then send every line read from stdin
//
// # Implementation
//
// Keys live only in process memory, so every invocation starts with its own
// handshake. The root command loads the client config, applies flag
// overrides and builds the dependency graph before any subcommand runs.
package commands
