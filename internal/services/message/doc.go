// Package message runs the client side of a ciphergate session.
//
// Handshake posts the client's public keys and imports the server's exchange
// key. SendMessage encrypts a chat message under the derived secret, signs
// the resulting envelope string, posts it to /chat and decrypts the reply.
package message
