package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpStatusCounters = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ciphergate_http_status",
			Help: "Count of various http status.",
		},
		[]string{"status"},
	)

	handshakeCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ciphergate_handshake_total",
		Help: "Total number of completed handshakes.",
	})
)

// statusRecorder remembers the status and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func recorderFor(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w}
}

// recordHTTPStats counts responses by status code.
func recordHTTPStats(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorderFor(w)
		next.ServeHTTP(rec, r)
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		httpStatusCounters.WithLabelValues(fmt.Sprintf("%v", status)).Inc()
	})
}
