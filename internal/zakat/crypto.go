package zakat

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// CryptoCalculator values every lot at market; lots of one symbol collapse into one item.
type CryptoCalculator struct{}

func (CryptoCalculator) Category() models.Category { return models.CategoryCrypto }

// LotValue is the lot's MarketValue, or Quantity × the spot price for its
// symbol. A lot with neither is worth zero.
func LotValue(lot models.CryptoLot, p models.MarketPrices) decimal.Decimal {
	if !lot.MarketValue.IsZero() {
		return lot.MarketValue
	}
	price, ok := p.Crypto[strings.ToUpper(lot.Symbol)]
	if !ok {
		return decimal.Zero
	}
	return lot.Quantity.Mul(price)
}

func (CryptoCalculator) CalculateTotal(v models.CryptoHoldings, p models.MarketPrices) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range v.Coins {
		total = total.Add(LotValue(lot, p))
	}
	return total
}

func (c CryptoCalculator) CalculateZakatable(v models.CryptoHoldings, p models.MarketPrices, hawlMet bool) decimal.Decimal {
	if !hawlMet {
		return decimal.Zero
	}
	return c.CalculateTotal(v, p)
}

func (CryptoCalculator) Breakdown(v models.CryptoHoldings, p models.MarketPrices, hawlMet bool, _ string) models.AssetBreakdown {
	b := newItems()
	for _, lot := range v.Coins {
		sym := strings.ToUpper(strings.TrimSpace(lot.Symbol))
		b.zakatable(strings.ToLower(sym), sym, LotValue(lot, p), hawlMet)
	}
	return b.build()
}
