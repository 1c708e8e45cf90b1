package zakat

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// WealthBasis selects which combined figure is compared against nisab.
type WealthBasis string

const (
	// GrossTotal compares the signed sum of category totals, debt included.
	GrossTotal WealthBasis = "gross"
	// NetZakatable compares the sum of hawl-gated zakatable amounts.
	NetZakatable WealthBasis = "net"
)

func ParseWealthBasis(s string) (WealthBasis, error) {
	switch WealthBasis(s) {
	case "", GrossTotal:
		return GrossTotal, nil
	case NetZakatable:
		return NetZakatable, nil
	default:
		return "", fmt.Errorf("unknown wealth basis %q", s)
	}
}

func (b WealthBasis) wealth(c models.CombinedBreakdown) decimal.Decimal {
	if b == NetZakatable {
		return c.ZakatableValue
	}
	return c.TotalValue
}

// Aggregator combines category breakdowns and evaluates nisab.
type Aggregator struct {
	Policy ThresholdPolicy
	Basis  WealthBasis
}

// DefaultAggregator compares gross total wealth against the lower threshold.
func DefaultAggregator() Aggregator {
	return Aggregator{Policy: LowerOfGoldSilver{}, Basis: GrossTotal}
}

// Combine sums every category as-is. Each category was already gated by its
// own hawl flag, and a negative debt contribution is kept.
func (a Aggregator) Combine(breakdowns map[models.Category]models.AssetBreakdown, t models.NisabThresholds) models.CombinedBreakdown {
	c := models.CombinedBreakdown{
		TotalValue:     decimal.Zero,
		ZakatableValue: decimal.Zero,
		ZakatDue:       decimal.Zero,
		PerCategory:    make(map[models.Category]models.AssetBreakdown, len(breakdowns)),
	}
	for cat, b := range breakdowns {
		c.TotalValue = c.TotalValue.Add(b.Total)
		c.ZakatableValue = c.ZakatableValue.Add(b.Zakatable)
		c.ZakatDue = c.ZakatDue.Add(b.ZakatDue)
		c.PerCategory[cat] = b
	}
	c.MeetsNisab = MeetsNisab(a.Basis.wealth(c), t, a.Policy)
	return c
}

// Combine uses DefaultAggregator.
func Combine(breakdowns map[models.Category]models.AssetBreakdown, t models.NisabThresholds) models.CombinedBreakdown {
	return DefaultAggregator().Combine(breakdowns, t)
}
