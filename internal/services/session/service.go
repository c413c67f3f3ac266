package session

import (
	"github.com/sirupsen/logrus"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

// Service registers a peer's two public keys under one fresh SessionID.
//
// The signature key is registered first because the authenticator is the
// only component that mints identifiers; the exchange key is then stored
// under the identifier it returned.
type Service struct {
	registry domain.KeyRegistry
	verifier domain.SignatureVerifier
	exchange domain.ExchangeService
	log      logrus.FieldLogger
}

// New constructs a Session Service. registry must be the one backing
// verifier; it is used to roll back a half-finished handshake.
func New(
	registry domain.KeyRegistry,
	verifier domain.SignatureVerifier,
	exchange domain.ExchangeService,
	log logrus.FieldLogger,
) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		registry: registry,
		verifier: verifier,
		exchange: exchange,
		log:      log,
	}
}

// Handshake registers req's keys and returns the new session.
//
// Steps:
//  1. Decode and parse the RSA key (SPKI DER) so garbage never gets an id.
//  2. Mint the SessionID by registering the signature key.
//  3. Decode the exchange key; on failure revoke the record from step 2.
//  4. Register the exchange key and export the server's public point.
//
// The exchange point itself is validated lazily on first derivation.
func (s *Service) Handshake(req domain.HandshakeRequest) (domain.HandshakeResult, error) {
	rsaDER, err := crypto.DecodeB64(req.SignatureKey)
	if err != nil || len(rsaDER) == 0 {
		return domain.HandshakeResult{}, domain.WrapError(domain.KindMalformedKey, "signature key missing or not base64", err)
	}
	if _, err := crypto.ParseRSAPublic(rsaDER); err != nil {
		return domain.HandshakeResult{}, domain.WrapError(domain.KindMalformedKey, "signature key", err)
	}

	serverKey, err := s.exchange.ExportPublicKey()
	if err != nil {
		return domain.HandshakeResult{}, err
	}

	id := s.verifier.RegisterPeer(rsaDER)

	ecdhRaw, err := crypto.DecodeB64(req.ExchangeKey)
	if err != nil || len(ecdhRaw) == 0 {
		s.registry.Revoke(domain.KeyClassSignature, id)
		return domain.HandshakeResult{}, domain.WrapError(domain.KindMalformedKey, "exchange key missing or not base64", err)
	}
	s.exchange.RegisterPeerKey(id, ecdhRaw)

	s.log.WithFields(logrus.Fields{
		"function": "Handshake",
		"session":  id,
		"rsa":      crypto.Fingerprint(rsaDER),
		"ecdh":     crypto.Fingerprint(ecdhRaw),
	}).Info("Handshake complete")

	return domain.HandshakeResult{SessionID: id, ServerKey: serverKey}, nil
}

// Compile-time assertion that Service implements domain.HandshakeService.
var _ domain.HandshakeService = (*Service)(nil)
