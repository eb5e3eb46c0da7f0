// Package idempotency replays stored transition responses for repeated client keys.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rider:transition"

// Response is a stored HTTP reply.
type Response struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Store keeps responses in Redis for ttl.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns nil when client is nil, which disables replay.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if client == nil {
		return nil
	}
	return &Store{client: client, ttl: ttl}
}

// NewClient opens a Redis client for addr. Empty addr yields nil.
func NewClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Key builds the storage key for one rider's client key.
func Key(riderID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, riderID, key)
}

// ErrInFlight means another request holds the key and has not finished yet.
var ErrInFlight = errors.New("idempotency: request in flight")

const (
	pendingMarker = "pending"
	// caps how long a crashed holder can block its key
	reservationTTL = time.Minute
)

// Reserve claims key before the transition runs. It returns reserved=true when
// the caller now owns the key, the stored reply when the key already completed,
// or ErrInFlight while another request holds it.
func (s *Store) Reserve(ctx context.Context, riderID, key string) (*Response, bool, error) {
	ok, err := s.client.SetNX(ctx, Key(riderID, key), pendingMarker, min(s.ttl, reservationTTL)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return nil, true, nil
	}

	resp, found, err := s.Get(ctx, riderID, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		// holder released or expired between the two calls
		return nil, false, ErrInFlight
	}
	return resp, false, nil
}

// Get returns the stored response, if any. A held reservation yields ErrInFlight.
func (s *Store) Get(ctx context.Context, riderID, key string) (*Response, bool, error) {
	raw, err := s.client.Get(ctx, Key(riderID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("idempotency get: %w", err)
	}
	if string(raw) == pendingMarker {
		return nil, false, ErrInFlight
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("idempotency decode: %w", err)
	}
	return &resp, true, nil
}

// Complete replaces the reservation with resp for the full ttl.
func (s *Store) Complete(ctx context.Context, riderID, key string, resp Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := s.client.Set(ctx, Key(riderID, key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops the reservation so the client may retry with the same key.
func (s *Store) Release(ctx context.Context, riderID, key string) error {
	if err := s.client.Del(ctx, Key(riderID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
