package workers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/internal/workers"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeSource struct {
	mu     sync.Mutex
	calls  int
	alerts []domain.CachedAlert
	err    error
}

func (s *fakeSource) ListActivePublic(_ context.Context, _ time.Time) ([]domain.CachedAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.alerts, s.err
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeCache struct {
	mu   sync.Mutex
	sets int
	last []domain.CachedAlert
	ttl  time.Duration
	err  error
}

func (c *fakeCache) SetActive(_ context.Context, alerts []domain.CachedAlert, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sets++
	c.last = alerts
	c.ttl = ttl
	return nil
}

func (c *fakeCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

func TestCacheRefresher_RefreshesOnStartAndTick(t *testing.T) {
	source := &fakeSource{alerts: []domain.CachedAlert{{Title: "flood"}}}
	cache := &fakeCache{}

	w := workers.NewCacheRefresher(source, cache, testLogger(), 20*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for cache.setCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 refreshes (startup + tick), got %d", cache.setCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("refresher did not stop after context cancel")
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if len(cache.last) != 1 || cache.last[0].Title != "flood" {
		t.Fatalf("unexpected cached set: %+v", cache.last)
	}
	if cache.ttl != time.Minute {
		t.Fatalf("expected ttl=1m got %v", cache.ttl)
	}
}

func TestCacheRefresher_SourceErrorSkipsCacheWrite(t *testing.T) {
	source := &fakeSource{err: errors.New("db down")}
	cache := &fakeCache{}

	w := workers.NewCacheRefresher(source, cache, testLogger(), 10*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for source.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected refresh attempts to keep going, got %d", source.callCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	if cache.setCount() != 0 {
		t.Fatalf("failed source read must not write the cache, got %d writes", cache.setCount())
	}
}
