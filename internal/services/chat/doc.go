// Package chat produces the server's reply to a decrypted chat message.
//
// The reply is a toy echo: the first ten characters of the content reversed,
// followed by a canned sentence, stamped with the server as author.
package chat
