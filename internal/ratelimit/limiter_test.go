package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestLimiter(maxRequests int, window time.Duration) (*Limiter, *fakeClock, *MemoryStore) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	l := NewLimiter(store, maxRequests, window)
	l.now = clock.Now
	return l, clock, store
}

func TestLimiter_AllowsUpToMaxThenRejects(t *testing.T) {
	l, clock, _ := newTestLimiter(5, time.Minute)
	ctx := context.Background()
	start := clock.Now()

	for i := 1; i <= 5; i++ {
		res, err := l.Check(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d rejected, want allowed", i)
		}
		if res.Remaining != 5-i {
			t.Errorf("request %d remaining = %d, want %d", i, res.Remaining, 5-i)
		}
		if !res.ResetAt.Equal(start.Add(time.Minute)) {
			t.Errorf("request %d resetAt = %v, want %v", i, res.ResetAt, start.Add(time.Minute))
		}
	}

	res, err := l.Check(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if res.Allowed {
		t.Fatal("sixth request allowed, want rejected")
	}
	if res.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", res.Remaining)
	}
	if got := res.RetryAfter(clock.Now()); got != time.Minute {
		t.Errorf("RetryAfter = %v, want 1m", got)
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _, _ := newTestLimiter(1, time.Minute)
	ctx := context.Background()

	if res, _ := l.Check(ctx, "a"); !res.Allowed {
		t.Fatal("first request for a rejected")
	}
	if res, _ := l.Check(ctx, "a"); res.Allowed {
		t.Fatal("second request for a allowed")
	}
	if res, _ := l.Check(ctx, "b"); !res.Allowed {
		t.Fatal("first request for b rejected")
	}
}

func TestLimiter_WindowResetsAfterExpiry(t *testing.T) {
	l, clock, _ := newTestLimiter(2, time.Minute)
	ctx := context.Background()

	l.Check(ctx, "k")
	l.Check(ctx, "k")
	if res, _ := l.Check(ctx, "k"); res.Allowed {
		t.Fatal("third request allowed inside window")
	}

	// The window boundary itself still belongs to the old window.
	clock.Advance(time.Minute)
	if res, _ := l.Check(ctx, "k"); res.Allowed {
		t.Fatal("request at exact reset time allowed")
	}

	clock.Advance(time.Millisecond)
	res, _ := l.Check(ctx, "k")
	if !res.Allowed {
		t.Fatal("request after window expiry rejected")
	}
	if res.Remaining != 1 {
		t.Errorf("remaining = %d, want 1", res.Remaining)
	}
}

func TestLimiter_Defaults(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 0, 0)
	if l.maxRequests != DefaultMaxRequests || l.window != DefaultWindow {
		t.Errorf("defaults = (%d, %v), want (%d, %v)", l.maxRequests, l.window, DefaultMaxRequests, DefaultWindow)
	}
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration, time.Time) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}

func TestLimiter_StoreErrors(t *testing.T) {
	if _, err := NewLimiter(failingStore{}, 5, time.Minute).Check(context.Background(), "k"); err == nil {
		t.Error("expected store error")
	}
	if _, err := NewLimiter(nil, 5, time.Minute).Check(context.Background(), "k"); err == nil {
		t.Error("expected error for missing store")
	}
}

func TestMemoryStore_Prune(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store.Increment(ctx, "old", time.Second, now)
	store.Increment(ctx, "fresh", time.Hour, now)

	if removed := store.Prune(now.Add(2 * time.Second)); removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Increment(ctx, "shared", time.Minute, now)
		}()
	}
	wg.Wait()

	count, _, _ := store.Increment(ctx, "shared", time.Minute, now)
	if count != 51 {
		t.Errorf("count = %d, want 51", count)
	}
}
