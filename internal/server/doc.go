// Package server is the HTTP transport in front of the ciphergate services.
//
// Middleware order, outermost first: CORS, access log, status metrics,
// admission. Private routes then run signature verification before their
// handler decrypts the body. Every response, including errors, is the JSON
// object {"statusCode": N, "body": "..."}.
package server
