package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tropicaldog17/zakat/internal/repositories"
)

// MonthlyBudget limits paid upstream calls per calendar month using the
// persisted request counter. A new month starts from zero.
type MonthlyBudget struct {
	counters repositories.RequestCounterRepository
	limit    int64
	logger   *zap.Logger
	now      func() time.Time
}

func NewMonthlyBudget(counters repositories.RequestCounterRepository, limit int, logger *zap.Logger) *MonthlyBudget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonthlyBudget{counters: counters, limit: int64(limit), logger: logger, now: time.Now}
}

// HasBudget fails closed: if the counter cannot be read, paid providers are skipped.
func (b *MonthlyBudget) HasBudget(ctx context.Context) bool {
	now := b.now().UTC()
	n, err := b.counters.Count(ctx, now.Year(), now.Month())
	if err != nil {
		b.logger.Warn("Failed to read request counter", zap.Error(err))
		return false
	}
	return n < b.limit
}

// Acquire takes one call from this month's budget. The counter only moves
// while it is below the limit, so concurrent callers never overshoot.
func (b *MonthlyBudget) Acquire(ctx context.Context) bool {
	now := b.now().UTC()
	n, ok, err := b.counters.TryIncrement(ctx, now.Year(), now.Month(), b.limit)
	if err != nil {
		b.logger.Warn("Failed to record paid request", zap.Error(err))
		return false
	}
	if ok && n == b.limit {
		b.logger.Warn("Monthly paid API budget exhausted",
			zap.Int64("limit", b.limit),
			zap.Int("year", now.Year()),
			zap.String("month", now.Month().String()))
	}
	return ok
}

// Remaining returns how many paid calls are left this month.
func (b *MonthlyBudget) Remaining(ctx context.Context) (int64, error) {
	now := b.now().UTC()
	n, err := b.counters.Count(ctx, now.Year(), now.Month())
	if err != nil {
		return 0, err
	}
	if n >= b.limit {
		return 0, nil
	}
	return b.limit - n, nil
}
