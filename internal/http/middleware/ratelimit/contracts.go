package ratelimit

import "time"

// Limiter decides whether a caller key may spend one request now.
type Limiter interface {
	Allow(key string) bool
}

// waiter is implemented by limiters that know when the next token arrives.
type waiter interface {
	Take(key string) (bool, time.Duration)
}

// Clock lets tests drive bucket refill.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns time.Now.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits every caller. It is used when RATE_LIMIT_ENABLED is off.
type NopLimiter struct{}

// Allow always admits.
func (NopLimiter) Allow(string) bool { return true }
