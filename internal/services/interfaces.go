package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// MetalPriceProvider fetches a spot price per gram from one upstream.
type MetalPriceProvider interface {
	Name() string
	// Paid providers are skipped once the monthly budget is spent.
	Paid() bool
	FetchMetalPrice(ctx context.Context, commodity models.Commodity, currency string) (models.PriceQuote, error)
}

// FXProvider fetches all rates for one base currency.
type FXProvider interface {
	Name() string
	Paid() bool
	FetchRates(ctx context.Context, base string) (models.ExchangeRateSnapshot, error)
}

// CryptoPriceProvider fetches spot prices for a batch of coin symbols.
type CryptoPriceProvider interface {
	Name() string
	FetchCryptoPrices(ctx context.Context, symbols []string, currency string) (map[string]decimal.Decimal, error)
}

// BudgetChecker caps calls to paid providers. Acquire consumes one call
// atomically and reports false once the limit is reached.
type BudgetChecker interface {
	HasBudget(ctx context.Context) bool
	Acquire(ctx context.Context) bool
}

// PriceResolver turns unreliable upstream data into a usable value. None of
// its methods fail; degradation shows only in IsCache and Source.
type PriceResolver interface {
	ResolveCommodityPrice(ctx context.Context, commodity models.Commodity, currency string) models.PriceQuote
	ResolveExchangeRate(ctx context.Context, from, to string) models.RateQuote
	// ResolveSnapshot returns false only when no provider answered and nothing is cached.
	ResolveSnapshot(ctx context.Context, base string) (models.ExchangeRateSnapshot, bool)
	// ResolveCryptoPrices omits symbols no provider or cache could price.
	ResolveCryptoPrices(ctx context.Context, symbols []string, currency string) map[string]models.PriceQuote
}

// CurrencyConverter converts amounts between currencies without failing.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) Conversion
}

// NisabResolver prices the gold and silver thresholds in a currency.
type NisabResolver interface {
	ComputeThresholds(ctx context.Context, currency string) NisabResult
}

// ZakatService runs a full calculation.
type ZakatService interface {
	Calculate(ctx context.Context, req models.ZakatRequest) (*models.ZakatReport, error)
}
