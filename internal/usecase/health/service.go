package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/logger"
)

// Status is the overall service state reported by GET /health.
type Status string

const (
	// Healthy: the document store answers and accepts writes.
	Healthy Status = "ok"
	// Degraded: the store answers pings but the breaker is rejecting traffic.
	Degraded Status = "degraded"
	// Unhealthy: the document store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult is the outcome of one component check.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
	// CheckOpen reports a tripped circuit breaker.
	CheckOpen CheckResult = "open"
)

// Component check names.
const (
	CheckDatabase       = "database"
	CheckCircuitBreaker = "circuit_breaker"
)

// DefaultPingTimeout bounds the database check.
const DefaultPingTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db          DBPinger
	breaker     BreakerReporter
	pingTimeout time.Duration
}

// New creates a Service. breaker can be nil when the store runs without one.
func New(db DBPinger, breaker BreakerReporter) *Service {
	return &Service{db: db, breaker: breaker, pingTimeout: DefaultPingTimeout}
}

// WithPingTimeout overrides DefaultPingTimeout.
func (s *Service) WithPingTimeout(d time.Duration) *Service {
	if d > 0 {
		s.pingTimeout = d
	}
	return s
}

// Check pings the store and inspects the breaker.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	status := Healthy

	pingCtx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()
	if err := s.db.Ping(pingCtx); err != nil {
		logger.FromContext(ctx).Warn("health: database ping failed", zap.Error(err))
		checks[CheckDatabase] = CheckError
		status = Unhealthy
	} else {
		checks[CheckDatabase] = CheckOK
	}

	if s.breaker != nil {
		checks[CheckCircuitBreaker] = CheckOK
		if s.breaker.Open() {
			checks[CheckCircuitBreaker] = CheckOpen
			if status == Healthy {
				status = Degraded
			}
		}
	}

	return Report{Status: status, Checks: checks}
}
