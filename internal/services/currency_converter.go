package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tropicaldog17/zakat/internal/models"
)

// Conversion is the outcome of Convert. When Degraded is set Amount is the
// input amount, unconverted.
type Conversion struct {
	Amount   decimal.Decimal `json:"amount"`
	Original decimal.Decimal `json:"original"`
	Rate     decimal.Decimal `json:"rate"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Source   string          `json:"source"`
	IsCache  bool            `json:"is_cache"`
	Degraded bool            `json:"degraded"`
}

type currencyConverter struct {
	resolver PriceResolver
	logger   *zap.Logger
}

// NewCurrencyConverter converts through the resolver's exchange-rate tiers.
func NewCurrencyConverter(resolver PriceResolver, logger *zap.Logger) CurrencyConverter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &currencyConverter{resolver: resolver, logger: logger}
}

func (c *currencyConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) Conversion {
	from, to = models.NormalizeCurrency(from), models.NormalizeCurrency(to)
	if from == to {
		return Conversion{
			Amount: amount, Original: amount, Rate: decimal.NewFromInt(1),
			From: from, To: to, Source: models.SourceIdentity,
		}
	}

	rate := c.resolver.ResolveExchangeRate(ctx, from, to)
	if rate.Degraded {
		c.logger.Warn("Conversion unavailable, amount left unconverted",
			zap.String("from", from), zap.String("to", to), zap.String("amount", amount.String()))
		return Conversion{
			Amount: amount, Original: amount, Rate: decimal.NewFromInt(1),
			From: from, To: to, Source: rate.Source, IsCache: true, Degraded: true,
		}
	}

	return Conversion{
		Amount:   amount.Mul(rate.Rate).Round(8),
		Original: amount,
		Rate:     rate.Rate,
		From:     from,
		To:       to,
		Source:   rate.Source,
		IsCache:  rate.IsCache,
	}
}
