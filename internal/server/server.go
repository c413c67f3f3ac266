package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"ciphergate/internal/crypto"
	"ciphergate/internal/domain"
	"ciphergate/internal/services/access"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

// DefaultCORSOrigin is used when no origin is configured.
const DefaultCORSOrigin = "https://localhost"

var errMalformedHandshake = domain.NewError(domain.KindMalformedKey, "handshake body is not valid JSON")

// Server routes requests to the handshake, access and chat services.
type Server struct {
	sessions domain.HandshakeService
	policy   *access.Policy
	chat     domain.ChatService
	ready    func() bool
	origin   string
	log      logrus.FieldLogger
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigin sets the single allowed origin.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) { s.origin = origin }
}

// WithReadiness makes /healthz report 503 while ready returns false.
func WithReadiness(ready func() bool) Option {
	return func(s *Server) { s.ready = ready }
}

// WithLogger sets the access logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) { s.log = l }
}

// New returns a Server.
func New(
	sessions domain.HandshakeService,
	policy *access.Policy,
	chat domain.ChatService,
	opts ...Option,
) *Server {
	s := &Server{
		sessions: sessions,
		policy:   policy,
		chat:     chat,
		ready:    func() bool { return true },
		origin:   DefaultCORSOrigin,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full middleware chain and routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/handshake", method(http.MethodPost, http.HandlerFunc(s.handleHandshake)))
	mux.Handle("/chat", method(http.MethodPost, s.private(s.handleChat)))
	mux.Handle("/healthz", method(http.MethodGet, http.HandlerFunc(s.handleHealth)))
	mux.Handle("/metrics", method(http.MethodGet, promhttp.Handler()))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, "Not found.")
	})

	var h http.Handler = mux
	h = admit(s.policy, h)
	h = recordHTTPStats(h)
	h = accessLog(s.log, h)
	h = cors(s.origin, h)
	return h
}

// privateHandler receives an authenticated request with its raw body.
type privateHandler func(w http.ResponseWriter, r *http.Request, id domain.SessionID, body string)

// private verifies the request signature over the raw body.
func (s *Server) private(h privateHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		id := domain.SessionID(r.Header.Get(domain.HeaderSessionID))
		if err := s.policy.Authenticate(id, r.Header.Get(domain.HeaderSignature), body); err != nil {
			writeRejection(w, err)
			return
		}
		h(w, r, id, body)
	})
}

func (s *Server) handleHandshake(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var req domain.HandshakeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		s.handshakeError(w, errMalformedHandshake)
		return
	}

	res, err := s.sessions.Handshake(req)
	if err != nil {
		s.handshakeError(w, err)
		return
	}
	handshakeCounter.Inc()

	w.Header().Set(domain.HeaderSessionID, res.SessionID.String())
	writeJSON(w, http.StatusAccepted, crypto.B64(res.ServerKey))
}

// handshakeError reports unusable client keys as 400; the session does not
// exist yet, so there is nothing to hide.
func (s *Server) handshakeError(w http.ResponseWriter, err error) {
	if domain.IsKind(err, domain.KindMalformedKey) {
		s.log.WithFields(logrus.Fields{
			"function": "handleHandshake",
		}).WithError(err).Warn("Handshake rejected")
		writeJSON(w, http.StatusBadRequest, "Malformed handshake keys.")
		return
	}
	writeRejection(w, access.Reject(err))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, id domain.SessionID, body string) {
	var msg domain.ChatMessage
	if err := s.policy.Decrypt(id, body, &msg); err != nil {
		writeRejection(w, err)
		return
	}

	env, err := s.policy.Encrypt(id, s.chat.Reply(msg))
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, env)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.ready() {
		writeJSON(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	writeJSON(w, http.StatusOK, "ok")
}

// method answers 405 for anything but m.
func method(m string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			w.Header().Set("Allow", m)
			writeJSON(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// readBody reads the capped request body, answering 400 or 413 itself.
func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	defer r.Body.Close()
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return "", false
		}
		writeJSON(w, http.StatusBadRequest, "Unreadable request body.")
		return "", false
	}
	return string(raw), true
}

func writeRejection(w http.ResponseWriter, err error) {
	rej := access.Reject(err)
	writeJSON(w, rej.Outcome.Status(), rej.Body)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.Response{StatusCode: status, Body: body})
}
