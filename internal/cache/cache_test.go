package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Jaydot33/proppulse-mvp/internal/cache"
)

func newTestStore(t *testing.T) (*cache.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := cache.NewWithClient(client)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	payload := []byte(`[{"id":"evt1","sport_key":"basketball_nba"}]`)
	store.Set(ctx, "odds:basketball_nba", payload, cache.PropsTTL)

	got, ok := store.Get(ctx, "odds:basketball_nba")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != string(payload) {
		t.Errorf("payload mismatch: got %s", got)
	}

	// Entry expires after the TTL
	mr.FastForward(cache.PropsTTL + time.Second)

	if _, ok := store.Get(ctx, "odds:basketball_nba"); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestGetOrCompute_SingleUpstreamCall(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	calls := 0
	compute := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte(`{"payload":true}`), nil
	}

	first, err := store.GetOrCompute(ctx, "odds:basketball_nba", cache.PropsTTL, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := store.GetOrCompute(ctx, "odds:basketball_nba", cache.PropsTTL, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected exactly one compute call, got %d", calls)
	}
	if string(first) != string(second) {
		t.Errorf("cached payload differs from computed payload")
	}
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	wantErr := errors.New("upstream down")
	_, err := store.GetOrCompute(ctx, "odds:basketball_nba", cache.PropsTTL, func(ctx context.Context) ([]byte, error) {
		return nil, wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error to propagate, got %v", err)
	}

	if _, ok := store.Get(ctx, "odds:basketball_nba"); ok {
		t.Error("failed compute must not leave a cache entry")
	}
}

func TestDisabledStore(t *testing.T) {
	store := cache.New(context.Background(), "")
	ctx := context.Background()

	if store.Enabled() {
		t.Fatal("store without URL should be disabled")
	}
	if store.Ping(ctx) {
		t.Error("disabled store should report unhealthy")
	}

	// Writes are no-ops, reads are misses, GetOrCompute always computes
	store.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("disabled store should never hit")
	}

	calls := 0
	for i := 0; i < 2; i++ {
		data, err := store.GetOrCompute(ctx, "k", time.Minute, func(ctx context.Context) ([]byte, error) {
			calls++
			return []byte("computed"), nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "computed" {
			t.Errorf("got %s, want computed", data)
		}
	}

	if calls != 2 {
		t.Errorf("disabled store should compute every time, got %d calls", calls)
	}
}

func TestNew_UnreachableRedisDisablesCache(t *testing.T) {
	store := cache.New(context.Background(), "redis://127.0.0.1:1")
	if store.Enabled() {
		t.Error("unreachable Redis should yield a disabled store, not an error")
	}
}
