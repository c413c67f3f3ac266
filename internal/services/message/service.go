package message

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
	"ciphergate/internal/protocol/envelope"
)

// ChatPath is the private route chat messages are posted to.
const ChatPath = "/chat"

// ErrNoSession indicates SendMessage was called before a handshake.
var ErrNoSession = domain.NewError(domain.KindPeerKeyNotRegistered, "no session with server; run Handshake first")

// Service exchanges encrypted chat messages with the server.
//
// High-level flow:
//   - Handshake: send both public keys, keep the SessionID, import the server
//     exchange key.
//   - SendMessage: encrypt, sign the envelope, post, decrypt the reply.
type Service struct {
	ids    domain.IdentityService
	client domain.ServerClient
	log    logrus.FieldLogger

	mu      sync.RWMutex
	session domain.SessionID
}

// New constructs a Message Service.
func New(ids domain.IdentityService, client domain.ServerClient, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{ids: ids, client: client, log: log}
}

// Handshake establishes a new session, replacing any previous one.
func (s *Service) Handshake(ctx context.Context) (domain.HandshakeResult, error) {
	if _, err := s.ids.Generate(); err != nil {
		return domain.HandshakeResult{}, err
	}
	req, err := s.ids.HandshakeRequest()
	if err != nil {
		return domain.HandshakeResult{}, err
	}

	res, err := s.client.Handshake(ctx, req)
	if err != nil {
		return domain.HandshakeResult{}, err
	}
	s.ids.ImportServerKey(res.ServerKey)

	s.mu.Lock()
	s.session = res.SessionID
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"function": "Handshake",
		"session":  res.SessionID,
		"server":   crypto.Fingerprint(res.ServerKey),
	}).Info("Session established")
	return res, nil
}

// Session returns the current SessionID, or "" before a handshake.
func (s *Service) Session() domain.SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SendMessage sends msg and returns the server's decrypted reply.
func (s *Service) SendMessage(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	id := s.Session()
	if id == "" {
		return domain.ChatMessage{}, ErrNoSession
	}

	key, err := s.ids.SharedSecret()
	if err != nil {
		return domain.ChatMessage{}, err
	}
	defer crypto.Wipe(key)

	env, err := envelope.Encrypt(msg, key)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	// The signature covers the envelope exactly as it goes on the wire.
	sig, err := s.ids.SignB64([]byte(env))
	if err != nil {
		return domain.ChatMessage{}, err
	}

	replyEnv, err := s.client.Call(ctx, ChatPath, id, sig, env)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	var reply domain.ChatMessage
	if err := envelope.Decrypt(replyEnv, key, &reply); err != nil {
		s.log.WithFields(logrus.Fields{
			"function": "SendMessage",
			"session":  id,
			"kind":     domain.KindOf(err).String(),
		}).Warn("Reply did not decrypt")
		return domain.ChatMessage{}, err
	}
	return reply, nil
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
