package zakat

import (
	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// MetalsCalculator values gold and silver by weight. Regularly worn jewellery
// is exempt; occasional-wear and investment holdings are zakatable.
type MetalsCalculator struct{}

func (MetalsCalculator) Category() models.Category { return models.CategoryMetals }

type metalBucket struct {
	key, label string
	grams      decimal.Decimal
	price      decimal.Decimal
	exempt     bool
}

func buckets(v models.MetalHoldings, p models.MarketPrices) []metalBucket {
	unit := v.Unit
	if unit == "" {
		unit = models.UnitGram
	}
	g := unit.ToGrams
	return []metalBucket{
		{"gold_regular", "Gold (regular use)", g(v.GoldRegular), p.GoldPerGram, true},
		{"gold_occasional", "Gold (occasional use)", g(v.GoldOccasional), p.GoldPerGram, false},
		{"gold_investment", "Gold (investment)", g(v.GoldInvestment), p.GoldPerGram, false},
		{"silver_regular", "Silver (regular use)", g(v.SilverRegular), p.SilverPerGram, true},
		{"silver_occasional", "Silver (occasional use)", g(v.SilverOccasional), p.SilverPerGram, false},
		{"silver_investment", "Silver (investment)", g(v.SilverInvestment), p.SilverPerGram, false},
	}
}

func (MetalsCalculator) CalculateTotal(v models.MetalHoldings, p models.MarketPrices) decimal.Decimal {
	total := decimal.Zero
	for _, bk := range buckets(v, p) {
		total = total.Add(bk.grams.Mul(bk.price))
	}
	return total
}

func (MetalsCalculator) CalculateZakatable(v models.MetalHoldings, p models.MarketPrices, hawlMet bool) decimal.Decimal {
	if !hawlMet {
		return decimal.Zero
	}
	z := decimal.Zero
	for _, bk := range buckets(v, p) {
		if !bk.exempt {
			z = z.Add(bk.grams.Mul(bk.price))
		}
	}
	return z
}

func (MetalsCalculator) Breakdown(v models.MetalHoldings, p models.MarketPrices, hawlMet bool, _ string) models.AssetBreakdown {
	b := newItems()
	for _, bk := range buckets(v, p) {
		value := bk.grams.Mul(bk.price)
		if bk.exempt {
			b.exempt(bk.key, bk.label, value)
			continue
		}
		b.zakatable(bk.key, bk.label, value, hawlMet)
	}
	return b.build()
}
