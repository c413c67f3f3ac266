package interfaces

import (
	"context"

	domaintypes "ciphergate/internal/domain/types"
)

// ExchangeService is the server-role key exchange: one long-lived keypair,
// one registered peer key per session.
type ExchangeService interface {
	ExportPublicKey() ([]byte, error)
	RegisterPeerKey(id domaintypes.SessionID, peerPublicKey []byte)
	DeriveSharedSecret(id domaintypes.SessionID) ([]byte, error)
}

// SignatureVerifier is the server-role signature check.
type SignatureVerifier interface {
	RegisterPeer(signaturePublicKey []byte) domaintypes.SessionID
	Verify(id domaintypes.SessionID, signature, message []byte) (bool, error)
}

// HandshakeService registers a peer's keys and returns its new session.
type HandshakeService interface {
	Handshake(req domaintypes.HandshakeRequest) (domaintypes.HandshakeResult, error)
}

// ChatService produces the reply to one decrypted chat message.
type ChatService interface {
	Reply(msg domaintypes.ChatMessage) domaintypes.ChatMessage
}

// MessageService is the client-role flow against a server.
type MessageService interface {
	Handshake(ctx context.Context) (domaintypes.HandshakeResult, error)
	SendMessage(ctx context.Context, msg domaintypes.ChatMessage) (domaintypes.ChatMessage, error)
}

// IdentityService owns the client role's key material for one process.
type IdentityService interface {
	Generate() (domaintypes.Fingerprint, error)
	HandshakeRequest() (domaintypes.HandshakeRequest, error)
	SignB64(message []byte) (string, error)
	ImportServerKey(serverKey []byte)
	SharedSecret() ([]byte, error)
}
