package domain

import "errors"

// ErrKind categorizes protocol errors so the access policy can decide how a
// failure is reported. Kinds never carry key material.
type ErrKind uint8

const (
	// KindNotInitialized: own keypair missing. Process-level misuse.
	KindNotInitialized ErrKind = iota + 1
	// KindPeerKeyNotRegistered: no handshake completed for this session.
	KindPeerKeyNotRegistered
	// KindKeyExchange: the registered peer exchange key is not a valid point.
	KindKeyExchange
	// KindAuthenticationFailed: GCM tag mismatch (tamper or stale key).
	KindAuthenticationFailed
	// KindMalformedEnvelope: wire-format violation, rejected before crypto.
	KindMalformedEnvelope
	// KindSignatureInvalid: the request signature did not verify.
	KindSignatureInvalid
	// KindMalformedKey: a public key could not be decoded or parsed.
	KindMalformedKey
	// KindDecode: authenticated plaintext did not deserialize.
	KindDecode
)

// String returns a short name for the kind.
func (k ErrKind) String() string {
	switch k {
	case KindNotInitialized:
		return "not initialized"
	case KindPeerKeyNotRegistered:
		return "peer key not registered"
	case KindKeyExchange:
		return "key exchange error"
	case KindAuthenticationFailed:
		return "authentication failed"
	case KindMalformedEnvelope:
		return "malformed envelope"
	case KindSignatureInvalid:
		return "signature invalid"
	case KindMalformedKey:
		return "malformed key"
	case KindDecode:
		return "decode error"
	default:
		return "unknown"
	}
}

// Error is a classified protocol error.
type Error struct {
	Kind  ErrKind
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Inner == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Inner.Error()
}

func (e *Error) Unwrap() error { return e.Inner }

// NewError returns an Error of the given kind.
func NewError(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WrapError returns an Error of the given kind wrapping inner.
func WrapError(kind ErrKind, msg string, inner error) *Error {
	return &Error{Kind: kind, Msg: msg, Inner: inner}
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind ErrKind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) ErrKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
