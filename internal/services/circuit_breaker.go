package services

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// BreakerState is the circuit breaker state.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // Normal operation
	BreakerOpen                         // Failing, skip the provider
	BreakerHalfOpen                     // Cool-down over, one trial call allowed
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "CLOSED"
	case BreakerOpen:
		return "OPEN"
	case BreakerHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreaker tracks consecutive failures of one provider.
// Safe for concurrent use.
type CircuitBreaker struct {
	name   string
	mu     sync.Mutex
	logger *zap.Logger
	now    func() time.Time

	state        BreakerState
	failureCount int
	openedAt     time.Time

	failureThreshold int
	cooldown         time.Duration
	onChange         func(name string, s BreakerState)
}

type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold int
	Cooldown         time.Duration
}

// DefaultCircuitBreakerConfig opens after three consecutive failures for five minutes.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		FailureThreshold: 3,
		Cooldown:         5 * time.Minute,
	}
}

func NewCircuitBreaker(cfg CircuitBreakerConfig, logger *zap.Logger) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CircuitBreaker{
		name:             cfg.Name,
		logger:           logger,
		now:              time.Now,
		state:            BreakerClosed,
		failureThreshold: cfg.FailureThreshold,
		cooldown:         cfg.Cooldown,
	}
}

// Allow reports whether the provider may be called now.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cooldown {
			cb.setState(BreakerHalfOpen)
			cb.logger.Info("Circuit breaker half-open", zap.String("provider", cb.name))
			return true
		}
		return false
	case BreakerHalfOpen:
		// a trial call is already in flight
		return false
	default:
		return false
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	if cb.state != BreakerClosed {
		cb.setState(BreakerClosed)
		cb.logger.Info("Circuit breaker closed", zap.String("provider", cb.name))
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		cb.failureCount++
		if cb.failureCount >= cb.failureThreshold {
			cb.openedAt = cb.now()
			cb.setState(BreakerOpen)
			cb.logger.Warn("Circuit breaker open",
				zap.String("provider", cb.name),
				zap.Int("failures", cb.failureCount),
				zap.Duration("cooldown", cb.cooldown))
		}
	case BreakerHalfOpen:
		cb.openedAt = cb.now()
		cb.setState(BreakerOpen)
		cb.logger.Warn("Circuit breaker reopened after failed trial call", zap.String("provider", cb.name))
	}
}

// Ignore records a call whose outcome says nothing about provider health.
// A half-open breaker returns to open with its original openedAt, so the
// next Allow starts a new trial call straight away.
func (cb *CircuitBreaker) Ignore() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == BreakerHalfOpen {
		cb.setState(BreakerOpen)
	}
}

func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset forces the breaker closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.setState(BreakerClosed)
}

func (cb *CircuitBreaker) setState(s BreakerState) {
	cb.state = s
	if cb.onChange != nil {
		cb.onChange(cb.name, s)
	}
}
