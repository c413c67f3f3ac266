package access

import (
	"github.com/sirupsen/logrus"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
	"ciphergate/internal/protocol/envelope"
)

var (
	errNoSession     = domain.NewError(domain.KindPeerKeyNotRegistered, "no session declared")
	errMissingHeader = newRejection(OutcomeBadRequest, domain.NewError(domain.KindSignatureInvalid, "session or signature missing"))
	errBadSignature  = domain.NewError(domain.KindSignatureInvalid, "signature did not verify")
)

// Policy decides whether a request may proceed and performs its crypto.
type Policy struct {
	public   map[string]struct{}
	verifier domain.SignatureVerifier
	exchange domain.ExchangeService
	log      logrus.FieldLogger
}

// New returns a Policy treating publicResources as the allow-list.
func New(
	publicResources []string,
	verifier domain.SignatureVerifier,
	exchange domain.ExchangeService,
	log logrus.FieldLogger,
) *Policy {
	if log == nil {
		log = logrus.StandardLogger()
	}
	public := make(map[string]struct{}, len(publicResources))
	for _, r := range publicResources {
		public[r] = struct{}{}
	}
	return &Policy{public: public, verifier: verifier, exchange: exchange, log: log}
}

// IsPublic reports whether resource is on the allow-list.
func (p *Policy) IsPublic(resource string) bool {
	_, ok := p.public[resource]
	return ok
}

// Admit lets public resources through and requires a declared session for
// everything else.
func (p *Policy) Admit(resource string, id domain.SessionID) error {
	if p.IsPublic(resource) || id != "" {
		return nil
	}
	return p.reject("Admit", id, errNoSession)
}

// Authenticate verifies signatureB64 over the raw request body for id.
func (p *Policy) Authenticate(id domain.SessionID, signatureB64, body string) error {
	if id == "" || signatureB64 == "" {
		p.logRejection("Authenticate", id, errMissingHeader)
		return errMissingHeader
	}
	sig, err := crypto.DecodeB64(signatureB64)
	if err != nil {
		return p.reject("Authenticate", id, domain.WrapError(domain.KindSignatureInvalid, "signature is not base64", err))
	}
	ok, err := p.verifier.Verify(id, sig, []byte(body))
	if err != nil {
		return p.reject("Authenticate", id, err)
	}
	if !ok {
		return p.reject("Authenticate", id, errBadSignature)
	}
	return nil
}

// Decrypt opens the envelope body for id into out. An empty body is left
// untouched.
func (p *Policy) Decrypt(id domain.SessionID, body string, out any) error {
	if body == "" {
		return nil
	}
	key, err := p.exchange.DeriveSharedSecret(id)
	if err != nil {
		return p.reject("Decrypt", id, err)
	}
	defer crypto.Wipe(key)

	if err := envelope.Decrypt(body, key, out); err != nil {
		return p.reject("Decrypt", id, err)
	}
	return nil
}

// Encrypt seals v for id, producing the response envelope.
func (p *Policy) Encrypt(id domain.SessionID, v any) (string, error) {
	key, err := p.exchange.DeriveSharedSecret(id)
	if err != nil {
		return "", p.reject("Encrypt", id, err)
	}
	defer crypto.Wipe(key)

	env, err := envelope.Encrypt(v, key)
	if err != nil {
		return "", p.reject("Encrypt", id, err)
	}
	return env, nil
}

func (p *Policy) reject(step string, id domain.SessionID, err error) *Rejection {
	rej := Reject(err)
	p.logRejection(step, id, rej)
	return rej
}

func (p *Policy) logRejection(step string, id domain.SessionID, rej *Rejection) {
	p.log.WithFields(logrus.Fields{
		"function": step,
		"session":  id,
		"outcome":  rej.Outcome.String(),
		"kind":     domain.KindOf(rej).String(),
	}).Warn("Request rejected")
}
