package signature

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
)

var errNoSignatureKey = domain.NewError(domain.KindPeerKeyNotRegistered, "peer signature key not registered")

// Authenticator is the server-role Signature Authenticator.
type Authenticator struct {
	registry domain.KeyRegistry
	log      logrus.FieldLogger
}

// NewAuthenticator returns an Authenticator storing signature keys in
// registry. A nil log uses the standard logrus logger.
func NewAuthenticator(registry domain.KeyRegistry, log logrus.FieldLogger) *Authenticator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Authenticator{registry: registry, log: log}
}

// RegisterPeer mints a fresh SessionID and stores signaturePublicKey (SPKI
// DER) under it. This is the only place a SessionID is created.
func (a *Authenticator) RegisterPeer(signaturePublicKey []byte) domain.SessionID {
	id := domain.SessionID(uuid.NewString())
	a.registry.Register(domain.KeyClassSignature, id, signaturePublicKey)
	sessionMintCounter.Inc()

	a.log.WithFields(logrus.Fields{
		"function":    "RegisterPeer",
		"session":     id,
		"fingerprint": crypto.Fingerprint(signaturePublicKey),
	}).Debug("Registered peer signature key")
	return id
}

// Verify reports whether signature is a valid signature over message by the
// key registered for id.
func (a *Authenticator) Verify(id domain.SessionID, signature, message []byte) (bool, error) {
	der, ok := a.registry.Lookup(domain.KeyClassSignature, id)
	if !ok {
		return false, errNoSignatureKey
	}
	pub, err := crypto.ParseRSAPublic(der)
	if err != nil {
		return false, domain.WrapError(domain.KindMalformedKey, "registered signature key", err)
	}

	rsaVerifyCounter.Inc()
	if !crypto.VerifyRSA(pub, message, signature) {
		rsaVerifyFailCounter.Inc()
		a.log.WithFields(logrus.Fields{
			"function": "Verify",
			"session":  id,
		}).Debug("Signature mismatch")
		return false, nil
	}
	return true, nil
}

// Compile-time assertion that Authenticator implements domain.SignatureVerifier.
var _ domain.SignatureVerifier = (*Authenticator)(nil)
