package identity

import (
	"sync"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
	"ciphergate/internal/protocol/handshake"
	"ciphergate/internal/protocol/signature"
)

// ErrNoIdentity is returned when keys are used before Generate.
var ErrNoIdentity = domain.NewError(domain.KindNotInitialized, "identity not generated; run Generate first")

// Service manages the client's signing and exchange keys.
//
// The identity contains:
//   - an RSA key pair for signing request bodies (PKCS#1 v1.5, SHA-256).
//   - a P-256 key pair for ECDH with the server.
type Service struct {
	bits     int
	exchange *handshake.Initiator

	mu     sync.RWMutex
	signer *signature.Signer
}

// New returns an identity service generating RSA keys of the given size and
// applying kdf to the exchange output.
func New(bits int, kdf domain.KeyDerivation) *Service {
	if bits == 0 {
		bits = crypto.MinRSABits
	}
	return &Service{bits: bits, exchange: handshake.NewInitiator(kdf)}
}

// Generate creates both key pairs once and returns the fingerprint of the
// signing key. Later calls keep the existing keys.
func (s *Service) Generate() (domain.Fingerprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.signer == nil {
		signer, err := signature.GenerateSigner(s.bits)
		if err != nil {
			return "", err
		}
		s.signer = signer
	}
	if err := s.exchange.CreateKeypair(); err != nil {
		return "", err
	}
	return crypto.Fingerprint(s.signer.PublicKeyDER()), nil
}

// Rotate replaces the exchange keypair. The caller must handshake again.
func (s *Service) Rotate() error {
	return s.exchange.RotateKeypair()
}

// HandshakeRequest returns the client's public keys in wire form.
func (s *Service) HandshakeRequest() (domain.HandshakeRequest, error) {
	signer, err := s.currentSigner()
	if err != nil {
		return domain.HandshakeRequest{}, err
	}
	ecdhPub, err := s.exchange.ExportPublicKey()
	if err != nil {
		return domain.HandshakeRequest{}, err
	}
	return domain.HandshakeRequest{
		SignatureKey: crypto.B64(signer.PublicKeyDER()),
		ExchangeKey:  crypto.B64(ecdhPub),
	}, nil
}

// SignB64 signs message and returns the header form of the signature.
func (s *Service) SignB64(message []byte) (string, error) {
	signer, err := s.currentSigner()
	if err != nil {
		return "", err
	}
	return signer.SignB64(message)
}

// ImportServerKey remembers the server's exchange key.
func (s *Service) ImportServerKey(serverKey []byte) {
	s.exchange.RegisterServerKey(serverKey)
}

// SharedSecret derives the AES key shared with the server.
func (s *Service) SharedSecret() ([]byte, error) {
	return s.exchange.DeriveSharedSecret()
}

// ExchangeFingerprint returns the fingerprint of the client's exchange key.
func (s *Service) ExchangeFingerprint() (domain.Fingerprint, error) {
	pub, err := s.exchange.ExportPublicKey()
	if err != nil {
		return "", ErrNoIdentity
	}
	return crypto.Fingerprint(pub), nil
}

func (s *Service) currentSigner() (*signature.Signer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.signer == nil {
		return nil, ErrNoIdentity
	}
	return s.signer, nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
