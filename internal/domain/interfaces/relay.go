package interfaces

import (
	"context"

	domaintypes "ciphergate/internal/domain/types"
)

// ServerClient is how the client role talks to the server, all with context.
type ServerClient interface {
	Handshake(
		ctx context.Context,
		req domaintypes.HandshakeRequest,
	) (domaintypes.HandshakeResult, error)

	// Call posts an already encrypted body to a private route and returns the
	// server's (still encrypted) response body.
	Call(
		ctx context.Context,
		path string,
		id domaintypes.SessionID,
		signature string,
		body string,
	) (string, error)
}
