package types

import "time"

// Header names carrying the session identifier and the request signature.
const (
	HeaderSessionID = "X-Auth-UUID"
	HeaderSignature = "X-Auth-Signature"
)

// HandshakeRequest carries the client's two public keys, each base64 encoded.
type HandshakeRequest struct {
	// SignatureKey is base64(SPKI DER) of the client's RSA public key.
	SignatureKey string `json:"RSA"`
	// ExchangeKey is base64 of the client's uncompressed P-256 point.
	ExchangeKey string `json:"ECDH"`
}

// HandshakeResult is what the server hands back from a handshake.
type HandshakeResult struct {
	SessionID SessionID `json:"session_id"`
	// ServerKey is the raw server exchange public key.
	ServerKey []byte `json:"server_key"`
}

// Response is the JSON body returned by every route.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// ChatMessage is the structured payload carried inside chat envelopes.
type ChatMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Color     string    `json:"color,omitempty"`
	Author    string    `json:"author"`
	Emoji     string    `json:"emoji,omitempty"`
}
