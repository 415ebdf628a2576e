package service

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	tokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Tokens minted, by purpose.",
		},
		[]string{"purpose"},
	)

	tokenRotationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_rotations_total",
			Help: "Refresh token rotations, by outcome.",
		},
		[]string{"result"},
	)

	metricsOnce sync.Once
)

// InitMetrics registers the token instruments with the default registry.
// Safe to call more than once.
func InitMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(tokensIssuedTotal, tokenRotationsTotal)
	})
}
