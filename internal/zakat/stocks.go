package zakat

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// PassiveQuickRate is the share of market value treated as zakatable under
// the quick rule for passive holdings.
var PassiveQuickRate = decimal.NewFromFloat(0.30)

type StocksCalculator struct{}

func (StocksCalculator) Category() models.Category { return models.CategoryStocks }

func (StocksCalculator) CalculateTotal(v models.StockHoldings, _ models.MarketPrices) decimal.Decimal {
	total := v.DividendEarnings
	for _, s := range v.ActiveStocks {
		total = total.Add(s.Value())
	}
	for _, s := range v.PassiveInvestments {
		total = total.Add(s.MarketValue)
	}
	for _, f := range v.Funds {
		total = total.Add(f.MarketValue)
	}
	return total
}

func (StocksCalculator) CalculateZakatable(v models.StockHoldings, _ models.MarketPrices, hawlMet bool) decimal.Decimal {
	if !hawlMet {
		return decimal.Zero
	}
	z := v.DividendEarnings
	for _, s := range v.ActiveStocks {
		z = z.Add(s.Value())
	}
	for _, s := range v.PassiveInvestments {
		z = z.Add(PassiveZakatable(s))
	}
	for _, f := range v.Funds {
		z = z.Add(fundZakatable(f))
	}
	return z
}

func (StocksCalculator) Breakdown(v models.StockHoldings, _ models.MarketPrices, hawlMet bool, _ string) models.AssetBreakdown {
	b := newItems()
	for _, s := range v.ActiveStocks {
		sym := strings.ToUpper(s.Symbol)
		b.zakatable("active:"+strings.ToLower(sym), sym+" (active trading)", s.Value(), hawlMet)
	}
	for _, s := range v.PassiveInvestments {
		b.partial("passive:"+itemKey(s.Name), s.Name+" (passive)", s.MarketValue, PassiveZakatable(s), hawlMet)
	}
	for _, f := range v.Funds {
		b.partial("fund:"+itemKey(f.Name), f.Name+" (fund)", f.MarketValue, fundZakatable(f), hawlMet)
	}
	b.zakatable("dividends", "Dividend Earnings", v.DividendEarnings, hawlMet)
	return b.build()
}

// PassiveZakatable estimates the zakatable share of a passive holding.
// The detailed method needs company financials with a positive share count;
// otherwise the quick 30% rule applies.
func PassiveZakatable(s models.PassiveInvestment) decimal.Decimal {
	if s.Method == models.PassiveDetailed && s.Company != nil && s.Company.TotalShares.IsPositive() {
		c := s.Company
		liquid := decimal.Sum(c.Cash, c.Receivables, c.Inventory)
		return liquid.Div(c.TotalShares).Mul(s.Shares)
	}
	return s.MarketValue.Mul(PassiveQuickRate)
}

func fundZakatable(f models.FundHolding) decimal.Decimal {
	if f.IsPassive {
		return f.MarketValue.Mul(PassiveQuickRate)
	}
	return f.MarketValue
}

func itemKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if k == "" {
		return "unnamed"
	}
	return strings.Join(strings.Fields(k), "_")
}
