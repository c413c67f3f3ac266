// Package relay provides the HTTP implementation of domain.ServerClient used
// by the ciphergate client.
//
// Supported operations:
//   - Handshake: POST /handshake with both public keys as JSON; the session
//     identifier comes back in the X-Auth-UUID header and the server's
//     exchange key in the JSON body.
//   - Call: POST an encrypted text/plain body to a private route with the
//     X-Auth-UUID and X-Auth-Signature headers; the encrypted reply is the
//     body field of the JSON response.
//
// All requests accept a context for cancellation and deadlines. Non-2xx
// statuses are returned as *StatusError with the method, full URL, status
// and the server's message.
package relay
