package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PropsTTL is the shared expiry for cached odds payloads and assembled props
const PropsTTL = 300 * time.Second

// Store wraps Redis for short-TTL snapshot caching. A Store with no client
// is valid and treats every read as a miss and every write as a no-op, so
// cache unavailability never becomes a request failure.
type Store struct {
	client *redis.Client
}

// New connects to Redis at the given URL. Any failure (bad URL, unreachable
// server) yields a disabled store, not an error.
func New(ctx context.Context, url string) *Store {
	if url == "" {
		return &Store{}
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		fmt.Printf("❌ Redis URL invalid, caching disabled: %v\n", err)
		return &Store{}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		fmt.Printf("❌ Redis unreachable, caching disabled: %v\n", err)
		client.Close()
		return &Store{}
	}

	return &Store{client: client}
}

// NewWithClient wraps an existing Redis client
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Enabled reports whether a Redis backend is attached
func (s *Store) Enabled() bool {
	return s.client != nil
}

// Ping checks backend connectivity; false when disabled
func (s *Store) Ping(ctx context.Context) bool {
	if s.client == nil {
		return false
	}
	return s.client.Ping(ctx).Err() == nil
}

// Get returns the cached payload for key, or ok=false on miss, error,
// or disabled cache.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if s.client == nil {
		return nil, false
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	return data, true
}

// Set stores a payload under key with the given TTL. Failures are swallowed:
// the cache is an optimization, never a dependency.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if s.client == nil {
		return
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		fmt.Printf("cache write failed for %s: %v\n", key, err)
	}
}

// GetOrCompute implements the cache-aside pattern: return the cached payload
// if present, otherwise run compute, store its result under key, and return
// it. compute errors propagate unchanged and nothing is written.
func (s *Store) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(context.Context) ([]byte, error)) ([]byte, error) {
	if data, ok := s.Get(ctx, key); ok {
		return data, nil
	}

	data, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	s.Set(ctx, key, data, ttl)

	return data, nil
}

// Close releases the Redis connection if one exists
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}

	err := s.client.Close()
	if err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
