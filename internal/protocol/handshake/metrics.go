package handshake

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ecdhDeriveCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecdh_derive_op",
		Help: "Total number of ECDH shared secret computations.",
	})

	ecdhCacheHitCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecdh_secret_cache_hit",
		Help: "Total number of shared secrets served from the cache.",
	})

	ecdhRotateCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecdh_keypair_rotate_op",
		Help: "Total number of server exchange keypair rotations.",
	})
)
