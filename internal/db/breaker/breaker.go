// Package breaker guards a db.Store with a circuit breaker.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/db"
	"github.com/kailas-cloud/recipedex/internal/metrics"
)

var _ db.Store = (*Store)(nil)

// Config tunes the breaker.
type Config struct {
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
}

// Store decorates a db.Store. While the breaker is open every call fails fast with
// db.ErrUnavailable. A missing key is a normal answer, not a failure.
type Store struct {
	next db.Store
	cb   *gobreaker.CircuitBreaker
}

// New wraps next with a circuit breaker.
func New(next db.Store, cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, db.ErrKeyNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if to == gobreaker.StateOpen {
				metrics.StoreBreakerOpen.Set(1)
			} else {
				metrics.StoreBreakerOpen.Set(0)
			}
		},
	})
	return &Store{next: next, cb: cb}
}

// State reports the current breaker state.
func (s *Store) State() gobreaker.State { return s.cb.State() }

// Open reports whether calls are currently rejected.
func (s *Store) Open() bool { return s.cb.State() == gobreaker.StateOpen }

// Ping bypasses the breaker so health checks still see the real store.
func (s *Store) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

// Close closes the wrapped store.
func (s *Store) Close() { s.next.Close() }

// WaitForReady delegates to the wrapped store.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return s.next.WaitForReady(ctx, timeout)
}

// JSONSet stores a JSON document through the breaker.
func (s *Store) JSONSet(ctx context.Context, key, path string, data []byte) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.next.JSONSet(ctx, key, path, data)
	})
	return err
}

// JSONSetMulti pipelines JSON.SET calls through the breaker as one attempt.
func (s *Store) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.next.JSONSetMulti(ctx, items)
	})
	return err
}

// JSONGet reads a JSON document through the breaker. A missing key does not trip it.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	res, err := s.execute(func() (interface{}, error) {
		return s.next.JSONGet(ctx, key, paths...)
	})
	if err != nil {
		return nil, err
	}
	data, _ := res.([]byte)
	return data, nil
}

// Del deletes a key through the breaker.
func (s *Store) Del(ctx context.Context, key string) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.next.Del(ctx, key)
	})
	return err
}

// Exists checks a key through the breaker.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	res, err := s.execute(func() (interface{}, error) {
		return s.next.Exists(ctx, key)
	})
	if err != nil {
		return false, err
	}
	ok, _ := res.(bool)
	return ok, nil
}

func (s *Store) execute(fn func() (interface{}, error)) (interface{}, error) {
	res, err := s.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(db.ErrUnavailable, err)
	}
	return res, err
}
