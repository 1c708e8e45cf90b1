package zakat

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// ThresholdPolicy picks the nisab threshold wealth is compared against.
type ThresholdPolicy interface {
	Name() string
	Threshold(t models.NisabThresholds) decimal.Decimal
}

// LowerOfGoldSilver uses the lower of the two thresholds, the more inclusive rule.
type LowerOfGoldSilver struct{}

func (LowerOfGoldSilver) Name() string { return "lower" }

func (LowerOfGoldSilver) Threshold(t models.NisabThresholds) decimal.Decimal {
	return decimal.Min(t.GoldThreshold, t.SilverThreshold)
}

type GoldStandard struct{}

func (GoldStandard) Name() string { return "gold" }

func (GoldStandard) Threshold(t models.NisabThresholds) decimal.Decimal { return t.GoldThreshold }

type SilverStandard struct{}

func (SilverStandard) Name() string { return "silver" }

func (SilverStandard) Threshold(t models.NisabThresholds) decimal.Decimal { return t.SilverThreshold }

// ThresholdPolicyByName maps a configured name to its policy.
func ThresholdPolicyByName(name string) (ThresholdPolicy, error) {
	switch name {
	case "", "lower":
		return LowerOfGoldSilver{}, nil
	case "gold":
		return GoldStandard{}, nil
	case "silver":
		return SilverStandard{}, nil
	default:
		return nil, fmt.Errorf("unknown nisab threshold policy %q", name)
	}
}

// Thresholds computes the gold and silver nisab from per-gram prices.
func Thresholds(goldPerGram, silverPerGram decimal.Decimal) models.NisabThresholds {
	return models.NisabThresholds{
		GoldThreshold:   models.NisabGoldGrams.Mul(goldPerGram),
		SilverThreshold: models.NisabSilverGrams.Mul(silverPerGram),
	}
}

// MeetsNisab reports whether wealth reaches the threshold chosen by policy.
// A nil policy means LowerOfGoldSilver.
func MeetsNisab(wealth decimal.Decimal, t models.NisabThresholds, policy ThresholdPolicy) bool {
	if policy == nil {
		policy = LowerOfGoldSilver{}
	}
	return wealth.GreaterThanOrEqual(policy.Threshold(t))
}
