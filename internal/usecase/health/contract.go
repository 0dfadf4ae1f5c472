package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter exposes the document store circuit breaker.
type BreakerReporter interface {
	Open() bool
}
