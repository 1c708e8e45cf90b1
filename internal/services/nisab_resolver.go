package services

import (
	"context"

	"github.com/tropicaldog17/zakat/internal/models"
	"github.com/tropicaldog17/zakat/internal/zakat"
)

// NisabResult carries the thresholds and the quotes they were priced from.
type NisabResult struct {
	Thresholds models.NisabThresholds `json:"thresholds"`
	Gold       models.PriceQuote      `json:"gold"`
	Silver     models.PriceQuote      `json:"silver"`
}

type nisabResolver struct {
	prices PriceResolver
}

func NewNisabResolver(prices PriceResolver) NisabResolver {
	return &nisabResolver{prices: prices}
}

// ComputeThresholds prices 85 g of gold and 595 g of silver in currency.
// A threshold is direct only when a provider quoted that metal in currency.
func (n *nisabResolver) ComputeThresholds(ctx context.Context, currency string) NisabResult {
	currency = models.NormalizeCurrency(currency)
	gold := n.prices.ResolveCommodityPrice(ctx, models.CommodityGold, currency)
	silver := n.prices.ResolveCommodityPrice(ctx, models.CommoditySilver, currency)

	t := zakat.Thresholds(gold.PricePerUnit, silver.PricePerUnit)
	t.IsDirectGoldPrice = gold.Direct && gold.Currency == currency
	t.IsDirectSilverPrice = silver.Direct && silver.Currency == currency
	t.Currency = currency

	return NisabResult{Thresholds: t, Gold: gold, Silver: silver}
}
