package access

import (
	"errors"
	"net/http"

	"ciphergate/internal/domain"
)

// Outcome is the externally visible result of a rejected request.
type Outcome uint8

const (
	OutcomeBadRequest Outcome = iota + 1
	OutcomeForbidden
	OutcomeInternal
)

// Response bodies. Forbidden is shared by every authentication failure.
const (
	BodyBadRequest = "UUID or Signature not specified."
	BodyForbidden  = "Forbidden access, you must first establish a /handshake"
	BodyInternal   = "Server error, refresh your ECDH key."
)

// Status returns the HTTP status code for o.
func (o Outcome) Status() int {
	switch o {
	case OutcomeBadRequest:
		return http.StatusBadRequest
	case OutcomeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeBadRequest:
		return "bad request"
	case OutcomeForbidden:
		return "forbidden"
	default:
		return "internal error"
	}
}

// Rejection is the error returned by every Policy step.
type Rejection struct {
	Outcome Outcome
	Body    string
	Err     error
}

func (r *Rejection) Error() string {
	if r.Err == nil {
		return r.Outcome.String()
	}
	return r.Outcome.String() + ": " + r.Err.Error()
}

func (r *Rejection) Unwrap() error { return r.Err }

func newRejection(o Outcome, err error) *Rejection {
	body := BodyInternal
	switch o {
	case OutcomeBadRequest:
		body = BodyBadRequest
	case OutcomeForbidden:
		body = BodyForbidden
	}
	return &Rejection{Outcome: o, Body: body, Err: err}
}

// Classify maps a protocol error to its outcome.
func Classify(err error) Outcome {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Outcome
	}
	switch domain.KindOf(err) {
	case domain.KindPeerKeyNotRegistered,
		domain.KindKeyExchange,
		domain.KindAuthenticationFailed,
		domain.KindMalformedEnvelope,
		domain.KindSignatureInvalid,
		domain.KindMalformedKey:
		return OutcomeForbidden
	default:
		// KindNotInitialized, KindDecode and unclassified local faults.
		return OutcomeInternal
	}
}

// Reject wraps err in a Rejection using Classify. A nil err returns nil.
func Reject(err error) *Rejection {
	if err == nil {
		return nil
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}
	return newRejection(Classify(err), err)
}
