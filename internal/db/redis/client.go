package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/recipedex/internal/db"
)

var _ db.Store = (*Store)(nil)

// ClientName is sent with CLIENT SETNAME so connections are identifiable in CLIENT LIST.
const ClientName = "recipedex"

const readinessPollInterval = 100 * time.Millisecond

// Config holds connection parameters for a Redis or Valkey store.
// Zero timeouts keep the rueidis defaults.
type Config struct {
	Addrs        []string
	Username     string
	Password     string
	DB           int
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// Store keeps recipe documents in a Redis or Valkey server with the JSON module
// (Redis 8+, Redis Stack, valkey-json). Both speak RESP, so one rueidis client serves either.
type Store struct {
	client rueidis.Client
}

// NewStore connects to the first reachable address in cfg.Addrs.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:      cfg.Addrs,
		Username:         cfg.Username,
		Password:         cfg.Password,
		SelectDB:         cfg.DB,
		ClientName:       ClientName,
		Dialer:           net.Dialer{Timeout: cfg.DialTimeout},
		ConnWriteTimeout: cfg.WriteTimeout,
		// Documents are written far more often than read back; client-side caching buys nothing.
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %v: %w", cfg.Addrs, err)
	}

	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store answers or timeout expires.
// On timeout the last ping error is reported alongside the deadline.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readinessPollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("store not ready after %s: %w", timeout, errors.Join(ctx.Err(), lastErr))
			}
			return fmt.Errorf("store not ready after %s: %w", timeout, ctx.Err())
		case <-ticker.C:
			if lastErr = s.Ping(ctx); lastErr == nil {
				return nil
			}
		}
	}
}
