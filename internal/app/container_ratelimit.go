package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-rider-platform/internal/config"
	"service-rider-platform/internal/http/middleware/ratelimit"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/metrics"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	return ratelimit.FromConfig(clock, cfg.RateLimit)
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitCounterOut struct {
	dig.Out
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
}

func newRateLimitCounter(reg prometheus.Registerer) (rateLimitCounterOut, error) {
	c := metrics.NewRateLimitExceededTotal()
	if err := registerCollector(reg, c); err != nil {
		return rateLimitCounterOut{}, err
	}
	return rateLimitCounterOut{Counter: c}, nil
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
