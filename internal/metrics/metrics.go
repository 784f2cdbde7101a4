package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_failures_total",
		Help: "Authentication and authorization failures by error code.",
	}, []string{"code"})

	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Successful logins.",
	})

	TokenRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "token_refreshes_total",
		Help: "Successful token refresh rotations.",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})
)
