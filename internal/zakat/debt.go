package zakat

import (
	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// DebtCalculator nets receivables against deductible liabilities. Its total
// and zakatable amount are signed: a negative result is a deduction against
// the rest of the portfolio and is not clamped.
type DebtCalculator struct{}

func (DebtCalculator) Category() models.Category { return models.CategoryDebt }

// NetImpact is receivables − (short-term + this period's long-term installment).
func NetImpact(v models.DebtHoldings) decimal.Decimal {
	return v.Receivables.Sub(v.ShortTermLiabilities).Sub(v.LongTermLiabilitiesAnnual)
}

func (DebtCalculator) CalculateTotal(v models.DebtHoldings, _ models.MarketPrices) decimal.Decimal {
	return NetImpact(v)
}

func (DebtCalculator) CalculateZakatable(v models.DebtHoldings, _ models.MarketPrices, hawlMet bool) decimal.Decimal {
	if !hawlMet {
		return decimal.Zero
	}
	return NetImpact(v)
}

// Breakdown emits liabilities with negative values. Their zakatable field
// carries the deduction so item zakatables still sum to the category's, but
// they are never flagged zakatable themselves.
func (DebtCalculator) Breakdown(v models.DebtHoldings, _ models.MarketPrices, hawlMet bool, _ string) models.AssetBreakdown {
	b := newItems()
	b.zakatable("receivables", "Receivables", v.Receivables, hawlMet)
	b.add("short_term_liabilities", liability("Short-term Liabilities", v.ShortTermLiabilities, hawlMet))
	b.add("long_term_liabilities", liability("Long-term Liabilities (annual)", v.LongTermLiabilitiesAnnual, hawlMet))
	return b.build()
}

func liability(label string, amount decimal.Decimal, hawlMet bool) models.AssetBreakdownItem {
	item := models.AssetBreakdownItem{
		Value:     amount.Neg(),
		Label:     label,
		Zakatable: decimal.Zero,
	}
	if hawlMet {
		item.Zakatable = amount.Neg()
	}
	return item
}
