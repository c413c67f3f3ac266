package signature

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rsaSignCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsa_sign_op",
		Help: "Total number of rsa signature operations.",
	})

	rsaVerifyCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsa_verify_op",
		Help: "Total number of rsa verify operations.",
	})

	rsaVerifyFailCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsa_verify_fail",
		Help: "Total number of rsa signatures that did not verify.",
	})

	sessionMintCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_minted",
		Help: "Total number of session identifiers issued.",
	})
)
