package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tropicaldog17/zakat/internal/models"
	"github.com/tropicaldog17/zakat/internal/zakat"
)

type zakatService struct {
	prices     PriceResolver
	converter  CurrencyConverter
	nisab      NisabResolver
	aggregator zakat.Aggregator
	logger     *zap.Logger
	now        func() time.Time
}

// NewZakatService wires the resolvers to the calculators. The aggregator
// carries the configured threshold policy and wealth basis.
func NewZakatService(prices PriceResolver, converter CurrencyConverter, nisab NisabResolver, aggregator zakat.Aggregator, logger *zap.Logger) ZakatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if aggregator.Policy == nil {
		aggregator.Policy = zakat.LowerOfGoldSilver{}
	}
	if aggregator.Basis == "" {
		aggregator.Basis = zakat.GrossTotal
	}
	return &zakatService{
		prices:     prices,
		converter:  converter,
		nisab:      nisab,
		aggregator: aggregator,
		logger:     logger,
		now:        time.Now,
	}
}

// Calculate values every category present in req. Only invalid input is an
// error; missing or stale market data shows up as warnings on the report.
func (s *zakatService) Calculate(ctx context.Context, req models.ZakatRequest) (*models.ZakatReport, error) {
	req.Currency = models.NormalizeCurrency(req.Currency)
	if req.Cash != nil && len(req.Cash.Values.ForeignCurrencyEntries) > 0 {
		cash := *req.Cash
		entries := make([]models.ForeignAmount, len(cash.Values.ForeignCurrencyEntries))
		for i, e := range cash.Values.ForeignCurrencyEntries {
			e.Currency = models.NormalizeCurrency(e.Currency)
			entries[i] = e
		}
		cash.Values.ForeignCurrencyEntries = entries
		req.Cash = &cash
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	currency := req.Currency

	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		s.logger.Warn("Calculation warning", zap.String("currency", currency), zap.String("warning", msg))
	}

	if req.Cash != nil && len(req.Cash.Values.ForeignCurrencyEntries) > 0 {
		cash := *req.Cash
		cash.Values = s.convertForeignCash(ctx, cash.Values, currency, warn)
		req.Cash = &cash
	}

	nisab := s.nisab.ComputeThresholds(ctx, currency)
	gold, silver := nisab.Gold, nisab.Silver
	describeQuote(gold, currency, warn)
	describeQuote(silver, currency, warn)

	prices := models.MarketPrices{
		Currency:      currency,
		GoldPerGram:   gold.PricePerUnit,
		SilverPerGram: silver.PricePerUnit,
	}

	var cryptoQuotes map[string]models.PriceQuote
	if req.Crypto != nil {
		cryptoQuotes, prices.Crypto = s.priceCrypto(ctx, req.Crypto.Values, currency, warn)
	}

	breakdowns := make(map[models.Category]models.AssetBreakdown)
	if c := req.Cash; c != nil {
		breakdowns[models.CategoryCash] = zakat.CashCalculator{}.Breakdown(c.Values, prices, c.HawlMet, currency)
	}
	if c := req.Metals; c != nil {
		breakdowns[models.CategoryMetals] = zakat.MetalsCalculator{}.Breakdown(c.Values, prices, c.HawlMet, currency)
	}
	if c := req.Stocks; c != nil {
		breakdowns[models.CategoryStocks] = zakat.StocksCalculator{}.Breakdown(c.Values, prices, c.HawlMet, currency)
	}
	if c := req.RealEstate; c != nil {
		breakdowns[models.CategoryRealEstate] = zakat.RealEstateCalculator{}.Breakdown(c.Values, prices, c.HawlMet, currency)
	}
	if c := req.Retirement; c != nil {
		breakdowns[models.CategoryRetirement] = zakat.RetirementCalculator{}.Breakdown(c.Values, prices, c.HawlMet, currency)
	}
	if c := req.Crypto; c != nil {
		breakdowns[models.CategoryCrypto] = zakat.CryptoCalculator{}.Breakdown(c.Values, prices, c.HawlMet, currency)
	}
	if c := req.Debt; c != nil {
		breakdowns[models.CategoryDebt] = zakat.DebtCalculator{}.Breakdown(c.Values, prices, c.HawlMet, currency)
	}

	combined := s.aggregator.Combine(breakdowns, nisab.Thresholds)

	s.logger.Info("Zakat calculated",
		zap.String("currency", currency),
		zap.Int("categories", len(breakdowns)),
		zap.String("total", combined.TotalValue.String()),
		zap.String("zakat_due", combined.ZakatDue.String()),
		zap.Bool("meets_nisab", combined.MeetsNisab),
		zap.Int("warnings", len(warnings)))

	return &models.ZakatReport{
		Currency:        currency,
		Combined:        combined,
		Nisab:           nisab.Thresholds,
		ThresholdPolicy: s.aggregator.Policy.Name(),
		WealthBasis:     string(s.aggregator.Basis),
		GoldPrice:       gold,
		SilverPrice:     silver,
		CryptoPrices:    cryptoQuotes,
		Warnings:        warnings,
		CalculatedAt:    s.now().UTC(),
	}, nil
}

// convertForeignCash folds converted foreign entries into ForeignCurrency.
// It works on a copy; the caller's entries are left alone.
func (s *zakatService) convertForeignCash(ctx context.Context, v models.CashHoldings, currency string, warn func(string, ...any)) models.CashHoldings {
	total := v.ForeignCurrency
	for _, e := range v.ForeignCurrencyEntries {
		conv := s.converter.Convert(ctx, e.Amount, e.Currency, currency)
		if conv.Degraded {
			warn("no exchange rate for %s to %s; %s %s counted unconverted", conv.From, currency, e.Amount, conv.From)
		} else if conv.Source == models.SourceStatic {
			warn("%s to %s converted with a static reference rate", conv.From, currency)
		} else if conv.IsCache {
			warn("%s to %s converted with a cached rate", conv.From, currency)
		}
		total = total.Add(conv.Amount)
	}
	v.ForeignCurrency = total
	v.ForeignCurrencyEntries = nil
	return v
}

// priceCrypto resolves spot prices for lots that carry no market value.
func (s *zakatService) priceCrypto(ctx context.Context, v models.CryptoHoldings, currency string, warn func(string, ...any)) (map[string]models.PriceQuote, map[string]decimal.Decimal) {
	var symbols []string
	for _, lot := range v.Coins {
		if lot.MarketValue.IsZero() && lot.Quantity.IsPositive() {
			symbols = append(symbols, strings.ToUpper(strings.TrimSpace(lot.Symbol)))
		}
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	quotes := s.prices.ResolveCryptoPrices(ctx, symbols, currency)
	spot := make(map[string]decimal.Decimal, len(quotes))
	for sym, q := range quotes {
		spot[sym] = q.PricePerUnit
		if q.IsCache {
			warn("%s price is from cache (%s)", sym, q.Timestamp.UTC().Format(time.RFC3339))
		}
	}

	var unpriced []string
	for _, sym := range symbols {
		if _, ok := spot[sym]; !ok {
			unpriced = append(unpriced, sym)
		}
	}
	if len(unpriced) > 0 {
		slices.Sort(unpriced)
		unpriced = slices.Compact(unpriced)
		warn("no price for %s; valued at 0", strings.Join(unpriced, ", "))
	}
	return quotes, spot
}

func describeQuote(q models.PriceQuote, currency string, warn func(string, ...any)) {
	switch {
	case q.Source == models.SourceFallback && q.Currency != currency:
		warn("%s price unavailable; using reference price in %s", q.Commodity, q.Currency)
	case q.Source == models.SourceFallback:
		warn("%s price unavailable; using reference price", q.Commodity)
	case q.IsCache:
		warn("%s price is from cache (%s)", q.Commodity, q.Timestamp.UTC().Format(time.RFC3339))
	}
}
