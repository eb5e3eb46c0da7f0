package ratelimit

import (
	"math"
	"sync"
	"time"

	"service-rider-platform/internal/config"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // refill, tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped, 0 keeps them forever
	MaxBuckets int           // 0 means unbounded
}

// TokenBucketLimiter keeps one bucket per caller key.
type TokenBucketLimiter struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
}

type bucket struct {
	tokens  float64
	updated time.Time
}

// NewTokenBucketLimiter creates limiter with explicit config and injected clock.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// FromConfig builds the limiter described by cfg. A disabled config yields NopLimiter.
func FromConfig(clock Clock, cfg config.RateLimit) Limiter {
	if !cfg.Enabled {
		return NopLimiter{}
	}
	return NewTokenBucketLimiter(clock, Config{
		Rate:       cfg.Rate,
		Burst:      cfg.Burst,
		TTL:        cfg.TTL,
		MaxBuckets: cfg.MaxBuckets,
	})
}

// Buckets reports how many callers are currently tracked.
func (l *TokenBucketLimiter) Buckets() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Allow spends one token for key.
func (l *TokenBucketLimiter) Allow(key string) bool {
	ok, _ := l.Take(key)
	return ok
}

// Take spends one token for key. When the bucket is empty it reports how long
// the caller has to wait for the next token.
func (l *TokenBucketLimiter) Take(key string) (bool, time.Duration) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
			// full table: strangers wait until idle buckets expire
			return false, l.idleWait()
		}
		b = &bucket{tokens: float64(l.cfg.Burst), updated: now}
		l.buckets[key] = b
	}

	b.refill(now, l.cfg.Rate, float64(l.cfg.Burst))
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	missing := 1 - b.tokens
	return false, time.Duration(missing / l.cfg.Rate * float64(time.Second))
}

func (b *bucket) refill(now time.Time, rate, burst float64) {
	elapsed := now.Sub(b.updated)
	if elapsed <= 0 {
		return
	}
	b.tokens = math.Min(burst, b.tokens+elapsed.Seconds()*rate)
	b.updated = now
}

func (l *TokenBucketLimiter) idleWait() time.Duration {
	if l.cfg.TTL > 0 {
		return l.cfg.TTL
	}
	return time.Second
}

// sweep drops buckets idle for longer than TTL. It runs at most once per
// max(TTL/2, 1m). Callers hold l.mu.
func (l *TokenBucketLimiter) sweep(now time.Time) {
	if l.cfg.TTL <= 0 || now.Before(l.nextSweep) {
		return
	}
	every := max(l.cfg.TTL/2, time.Minute)
	l.nextSweep = now.Add(every)

	for key, b := range l.buckets {
		if now.Sub(b.updated) > l.cfg.TTL {
			delete(l.buckets, key)
		}
	}
}
