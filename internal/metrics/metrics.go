package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// Transitions counts rider transitions by action and outcome.
type Transitions struct {
	vec *prometheus.CounterVec
}

// NewTransitionsTotal returns the rider transitions counter.
func NewTransitionsTotal() *Transitions {
	return &Transitions{vec: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rider_transitions_total",
			Help: "Total number of rider status transitions by action and outcome",
		},
		[]string{"action", "outcome"},
	)}
}

// Inc increments the counter for the given action and outcome.
func (t *Transitions) Inc(action, outcome string) {
	t.vec.WithLabelValues(action, outcome).Inc()
}

// Collector exposes the underlying vector for registration.
func (t *Transitions) Collector() prometheus.Collector { return t.vec }
