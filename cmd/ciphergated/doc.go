// Package main runs the ciphergate server: the long-lived peer of the
// end-to-end encryption protocol.
//
// HTTP API
//
//	POST /handshake {"RSA": "<b64 SPKI>", "ECDH": "<b64 P-256 point>"}
//	    Register both client keys under a freshly minted session. Replies
//	    202 with the session in the X-Auth-UUID header and the server's
//	    exchange key as the body.
//
//	POST /chat  (text/plain envelope)
//	    Requires X-Auth-UUID and X-Auth-Signature (RSA over the raw body).
//	    Replies 202 with the encrypted echo of the message as the body.
//
//	GET /healthz
//	    Liveness; 503 until the exchange keypair exists.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - All keys are held in memory and lost on exit; clients must handshake
//     again after a restart.
//   - Every response is JSON {"statusCode": N, "body": "..."}.
//   - A lightweight access log records method, path, remote, status, bytes and
//     duration for each request.
//   - SIGHUP rotates the server exchange keypair; SIGINT and SIGTERM shut
//     down gracefully.
//   - The default listen address is :8443. TLS is served when both tls_cert
//     and tls_key are set.
package main
