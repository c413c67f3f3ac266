package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"ciphergate/internal/domain"
	"ciphergate/internal/services/access"
)

// cors applies the single configured origin and answers preflights.
func cors(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Expose-Headers", domain.HeaderSessionID)
		h.Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers",
				"Content-Type, "+domain.HeaderSessionID+", "+domain.HeaderSignature)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog records method, path, remote, status, bytes and duration.
func accessLog(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recorderFor(w)
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"status":   status,
			"bytes":    rec.bytes,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// admit rejects requests for private resources that declare no session.
func admit(policy *access.Policy, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := domain.SessionID(r.Header.Get(domain.HeaderSessionID))
		if err := policy.Admit(r.URL.Path, id); err != nil {
			writeRejection(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
