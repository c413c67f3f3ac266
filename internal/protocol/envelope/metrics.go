package envelope

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sealCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aes_256_gcm_seal_op",
		Help: "Total number of envelopes sealed.",
	})

	openCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aes_256_gcm_open_op",
		Help: "Total number of envelopes opened.",
	})

	authFailCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aes_256_gcm_auth_fail",
		Help: "Total number of envelopes whose tag did not verify.",
	})
)
