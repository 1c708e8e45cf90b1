package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tropicaldog17/zakat/internal/cache"
	apperrors "github.com/tropicaldog17/zakat/internal/errors"
	"github.com/tropicaldog17/zakat/internal/metrics"
	"github.com/tropicaldog17/zakat/internal/models"
)

// Hardcoded per-gram USD prices served when no provider answers and nothing
// is cached. They are deliberately conservative and always tagged "fallback".
var (
	FallbackGoldPerGramUSD   = decimal.RequireFromString("75.00")
	FallbackSilverPerGramUSD = decimal.RequireFromString("0.95")
)

// Plausible per-gram USD ranges. Quotes outside them are rejected as bad data.
var metalSanityUSD = map[models.Commodity][2]decimal.Decimal{
	models.CommodityGold:   {decimal.NewFromInt(10), decimal.NewFromInt(1000)},
	models.CommoditySilver: {decimal.RequireFromString("0.1"), decimal.NewFromInt(50)},
}

var (
	// Widening applied to sanity ranges converted through the static table.
	staticTolerance = decimal.NewFromInt(5)
	// A live rate may differ from the static table by at most this factor.
	fxSanityFactor = decimal.NewFromInt(20)
)

var (
	errBreakerOpen     = errors.New("circuit breaker open")
	errBudgetExhausted = errors.New("monthly budget exhausted")
)

const (
	kindMetal  = "metal"
	kindFX     = "fx"
	kindCrypto = "crypto"
)

type ResolverConfig struct {
	// TTL is how long a stored value counts as fresh.
	TTL time.Duration
	// EmergencyMaxAge is how long a stale value may still be served after
	// every provider failed.
	EmergencyMaxAge time.Duration
	ProviderTimeout time.Duration
	// ChainTimeout bounds one full pass over the providers.
	ChainTimeout     time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		TTL:              time.Hour,
		EmergencyMaxAge:  24 * time.Hour,
		ProviderTimeout:  10 * time.Second,
		ChainTimeout:     30 * time.Second,
		FailureThreshold: 3,
		Cooldown:         5 * time.Minute,
	}
}

type ResolverOption func(*PriceResolverImpl)

func WithResolverConfig(cfg ResolverConfig) ResolverOption {
	return func(r *PriceResolverImpl) { r.cfg = cfg }
}

// WithMetalProviders sets the metal providers in priority order.
func WithMetalProviders(p ...MetalPriceProvider) ResolverOption {
	return func(r *PriceResolverImpl) { r.metals = p }
}

// WithFXProviders sets the exchange-rate providers in priority order.
func WithFXProviders(p ...FXProvider) ResolverOption {
	return func(r *PriceResolverImpl) { r.fx = p }
}

func WithCryptoProviders(p ...CryptoPriceProvider) ResolverOption {
	return func(r *PriceResolverImpl) { r.crypto = p }
}

func WithBudget(b BudgetChecker) ResolverOption {
	return func(r *PriceResolverImpl) { r.budget = b }
}

func WithStaticRates(s StaticRates) ResolverOption {
	return func(r *PriceResolverImpl) { r.static = s }
}

func WithResolverLogger(l *zap.Logger) ResolverOption {
	return func(r *PriceResolverImpl) { r.logger = l }
}

func WithResolverMetrics(m metrics.Recorder) ResolverOption {
	return func(r *PriceResolverImpl) { r.metrics = m }
}

// WithResolverClock replaces time.Now, for tests.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *PriceResolverImpl) { r.now = now }
}

// PriceResolverImpl implements PriceResolver over a cache.Store.
type PriceResolverImpl struct {
	store  cache.Store
	metals []MetalPriceProvider
	fx     []FXProvider
	crypto []CryptoPriceProvider
	budget BudgetChecker
	static StaticRates

	cfg     ResolverConfig
	logger  *zap.Logger
	metrics metrics.Recorder
	now     func() time.Time

	group      singleflight.Group
	breakersMu sync.Mutex
	breakers   map[string]*CircuitBreaker
}

func NewPriceResolver(store cache.Store, opts ...ResolverOption) *PriceResolverImpl {
	r := &PriceResolverImpl{
		store:    store,
		static:   DefaultStaticRates(),
		cfg:      DefaultResolverConfig(),
		now:      time.Now,
		breakers: make(map[string]*CircuitBreaker),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	r.metrics = metrics.OrNop(r.metrics)
	if r.store == nil {
		r.store = cache.NewMemoryStore()
	}
	return r
}

// Breaker returns the circuit breaker for a provider, creating it on first use.
func (r *PriceResolverImpl) Breaker(provider string) *CircuitBreaker {
	r.breakersMu.Lock()
	defer r.breakersMu.Unlock()
	if cb, ok := r.breakers[provider]; ok {
		return cb
	}
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             provider,
		FailureThreshold: r.cfg.FailureThreshold,
		Cooldown:         r.cfg.Cooldown,
	}, r.logger)
	cb.now = r.now
	cb.onChange = func(name string, s BreakerState) { r.metrics.SetBreakerState(name, int(s)) }
	r.breakers[provider] = cb
	return cb
}

func metalKey(c models.Commodity, currency string) string {
	return fmt.Sprintf("metal:%s:%s", c, currency)
}

func snapshotKey(base string) string { return "fx:snapshot:" + base }

func cryptoKey(symbol, currency string) string {
	return fmt.Sprintf("crypto:%s:%s", symbol, currency)
}

func (r *PriceResolverImpl) isFresh(ts time.Time) bool {
	return r.now().Sub(ts) <= r.cfg.TTL
}

func (r *PriceResolverImpl) withinMaxAge(ts time.Time) bool {
	return r.now().Sub(ts) <= r.cfg.EmergencyMaxAge
}

// chainContext detaches from the caller so one cancelled caller does not
// fail a flight others are waiting on, then applies the chain deadline.
func (r *PriceResolverImpl) chainContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), r.cfg.ChainTimeout)
}

func (r *PriceResolverImpl) save(ctx context.Context, key string, v any) {
	// Stores keep values until the emergency age so they can back the stale tier.
	if err := r.store.Set(ctx, key, v, r.cfg.EmergencyMaxAge); err != nil {
		r.logger.Warn("Failed to cache value", zap.String("key", key), zap.Error(err))
	}
}

func (r *PriceResolverImpl) load(ctx context.Context, key string, dest any) bool {
	if err := r.store.Get(ctx, key, dest); err != nil {
		if !cache.IsMiss(err) {
			r.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// cachedQuote returns a stored quote no older than the emergency max age.
func (r *PriceResolverImpl) cachedQuote(ctx context.Context, key string) (models.PriceQuote, bool) {
	var q models.PriceQuote
	if !r.load(ctx, key, &q) {
		return q, false
	}
	if q.Validate() != nil || !r.withinMaxAge(q.Timestamp) {
		return models.PriceQuote{}, false
	}
	return q, true
}

// cachedSnapshot returns a stored snapshot no older than the emergency max
// age, with IsCache set once it is past its TTL.
func (r *PriceResolverImpl) cachedSnapshot(ctx context.Context, base string) (models.ExchangeRateSnapshot, bool) {
	var s models.ExchangeRateSnapshot
	if !r.load(ctx, snapshotKey(base), &s) {
		return s, false
	}
	if s.Validate() != nil || !r.withinMaxAge(s.Timestamp) {
		return models.ExchangeRateSnapshot{}, false
	}
	if !r.isFresh(s.Timestamp) {
		s.IsCache = true
	}
	return s, true
}

// attempt calls one provider behind its budget and breaker with the
// per-provider timeout. check validates, and may clean, the result.
func attempt[T any](ctx context.Context, r *PriceResolverImpl, name string, paid bool, fetch func(context.Context) (T, error), check func(T) (T, error)) (T, error) {
	var zero T
	if paid && r.budget != nil && !r.budget.HasBudget(ctx) {
		r.metrics.ObserveProvider(name, "budget_exhausted", 0)
		return zero, apperrors.Unavailable(name, errBudgetExhausted)
	}
	cb := r.Breaker(name)
	if !cb.Allow() {
		r.metrics.ObserveProvider(name, "breaker_open", 0)
		return zero, apperrors.Unavailable(name, errBreakerOpen)
	}
	// HasBudget above only reads; Acquire consumes atomically.
	if paid && r.budget != nil && !r.budget.Acquire(ctx) {
		cb.Ignore()
		r.metrics.ObserveProvider(name, "budget_exhausted", 0)
		return zero, apperrors.Unavailable(name, errBudgetExhausted)
	}

	pctx, cancel := context.WithTimeout(ctx, r.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	v, err := fetch(pctx)
	if err == nil {
		v, err = check(v)
	}
	outcome := "success"
	if err != nil {
		outcome = apperrors.Kind(err)
	}
	r.metrics.ObserveProvider(name, outcome, time.Since(start))

	switch {
	case err == nil:
	case apperrors.IsUnsupported(err):
		// The provider is healthy; it just does not serve this request.
		cb.Ignore()
		r.logger.Info("Provider cannot serve request", zap.String("provider", name), zap.Error(err))
		return zero, err
	default:
		cb.RecordFailure()
		r.logger.Warn("Provider failed", zap.String("provider", name), zap.String("kind", outcome), zap.Error(err))
		return zero, err
	}
	cb.RecordSuccess()
	return v, nil
}

// ResolveCommodityPrice returns a per-gram price. Order: fresh cache,
// providers, stale cache, derivation from USD, hardcoded fallback.
func (r *PriceResolverImpl) ResolveCommodityPrice(ctx context.Context, commodity models.Commodity, currency string) models.PriceQuote {
	currency = models.NormalizeCurrency(currency)
	if !models.IsCurrencyCode(currency) {
		r.logger.Warn("Invalid currency, using USD", zap.String("currency", currency))
		currency = models.CurrencyUSD
	}
	key := metalKey(commodity, currency)

	if q, ok := r.cachedQuote(ctx, key); ok && r.isFresh(q.Timestamp) {
		r.metrics.CacheLookup(kindMetal, "fresh")
		return q
	}

	v, _, _ := r.group.Do(key, func() (any, error) {
		return r.resolveMetal(ctx, commodity, currency, key), nil
	})
	return v.(models.PriceQuote)
}

func (r *PriceResolverImpl) resolveMetal(parent context.Context, commodity models.Commodity, currency, key string) models.PriceQuote {
	ctx, cancel := r.chainContext(parent)
	defer cancel()

	cached, hasCache := r.cachedQuote(ctx, key)
	if hasCache && r.isFresh(cached.Timestamp) {
		r.metrics.CacheLookup(kindMetal, "fresh")
		return cached
	}
	r.metrics.CacheLookup(kindMetal, "miss")

	for _, p := range r.metals {
		p := p
		q, err := attempt(ctx, r, p.Name(), p.Paid(),
			func(ctx context.Context) (models.PriceQuote, error) {
				return p.FetchMetalPrice(ctx, commodity, currency)
			},
			func(q models.PriceQuote) (models.PriceQuote, error) {
				return q, r.checkMetal(p.Name(), q, commodity, currency)
			})
		if err != nil {
			continue
		}
		q.Commodity, q.Currency, q.IsCache = commodity, currency, false
		r.save(ctx, key, q)
		return q
	}

	if hasCache {
		cached.IsCache = true
		r.metrics.Fallback(kindMetal, "stale_cache")
		r.logger.Warn("All metal providers failed, serving stale cache",
			zap.String("key", key), zap.Duration("age", cached.Age(r.now())))
		return cached
	}

	if currency != models.CurrencyUSD {
		if q, ok := r.deriveMetal(ctx, commodity, currency); ok {
			r.metrics.Fallback(kindMetal, "derived")
			if !q.IsCache {
				r.save(ctx, key, q)
			}
			return q
		}
	}

	return r.fallbackMetal(commodity, currency)
}

// deriveMetal prices the commodity in USD and converts it.
func (r *PriceResolverImpl) deriveMetal(ctx context.Context, commodity models.Commodity, currency string) (models.PriceQuote, bool) {
	usd := r.ResolveCommodityPrice(ctx, commodity, models.CurrencyUSD)
	if usd.Source == models.SourceFallback {
		return models.PriceQuote{}, false
	}
	rate := r.ResolveExchangeRate(ctx, models.CurrencyUSD, currency)
	if rate.Degraded {
		return models.PriceQuote{}, false
	}
	return models.PriceQuote{
		Commodity:    commodity,
		PricePerUnit: usd.PricePerUnit.Mul(rate.Rate).Round(8),
		Currency:     currency,
		Timestamp:    usd.Timestamp,
		IsCache:      usd.IsCache || rate.IsCache,
		Source:       usd.Source,
		Direct:       false,
	}, true
}

func (r *PriceResolverImpl) fallbackMetal(commodity models.Commodity, currency string) models.PriceQuote {
	price := FallbackGoldPerGramUSD
	if commodity == models.CommoditySilver {
		price = FallbackSilverPerGramUSD
	}
	quoted := models.CurrencyUSD
	if currency != models.CurrencyUSD {
		if perUSD, ok := r.static.PerUSD(currency); ok {
			price = price.Mul(perUSD).Round(8)
			quoted = currency
		}
	}
	r.metrics.Fallback(kindMetal, "hardcoded")
	r.logger.Warn("No metal price available, using hardcoded fallback",
		zap.String("commodity", string(commodity)),
		zap.String("currency", quoted),
		zap.String("price", price.String()))
	return models.PriceQuote{
		Commodity:    commodity,
		PricePerUnit: price,
		Currency:     quoted,
		Timestamp:    r.now().UTC(),
		IsCache:      true,
		Source:       models.SourceFallback,
	}
}

func (r *PriceResolverImpl) checkMetal(provider string, q models.PriceQuote, commodity models.Commodity, currency string) error {
	if !q.PricePerUnit.IsPositive() {
		return apperrors.OutOfRange(provider, "%s price %s is not positive", commodity, q.PricePerUnit)
	}
	bounds, ok := metalSanityUSD[commodity]
	if !ok {
		return nil
	}
	lo, hi := bounds[0], bounds[1]
	if currency != models.CurrencyUSD {
		perUSD, ok := r.static.PerUSD(currency)
		if !ok {
			return nil
		}
		lo = lo.Mul(perUSD).Div(staticTolerance)
		hi = hi.Mul(perUSD).Mul(staticTolerance)
	}
	if q.PricePerUnit.LessThan(lo) || q.PricePerUnit.GreaterThan(hi) {
		return apperrors.OutOfRange(provider, "%s price %s %s/g outside [%s, %s]", commodity, q.PricePerUnit, currency, lo, hi)
	}
	return nil
}

type snapshotResult struct {
	snap models.ExchangeRateSnapshot
	ok   bool
}

// ResolveSnapshot returns all rates for base. Order: fresh cache, providers, stale cache.
func (r *PriceResolverImpl) ResolveSnapshot(ctx context.Context, base string) (models.ExchangeRateSnapshot, bool) {
	base = models.NormalizeCurrency(base)
	if s, ok := r.cachedSnapshot(ctx, base); ok && !s.IsCache {
		r.metrics.CacheLookup(kindFX, "fresh")
		return s, true
	}

	v, _, _ := r.group.Do(snapshotKey(base), func() (any, error) {
		s, ok := r.resolveSnapshot(ctx, base)
		return snapshotResult{snap: s, ok: ok}, nil
	})
	res := v.(snapshotResult)
	return res.snap, res.ok
}

func (r *PriceResolverImpl) resolveSnapshot(parent context.Context, base string) (models.ExchangeRateSnapshot, bool) {
	ctx, cancel := r.chainContext(parent)
	defer cancel()

	cached, hasCache := r.cachedSnapshot(ctx, base)
	if hasCache && !cached.IsCache {
		r.metrics.CacheLookup(kindFX, "fresh")
		return cached, true
	}
	r.metrics.CacheLookup(kindFX, "miss")

	for _, p := range r.fx {
		p := p
		s, err := attempt(ctx, r, p.Name(), p.Paid(),
			func(ctx context.Context) (models.ExchangeRateSnapshot, error) {
				return p.FetchRates(ctx, base)
			},
			func(s models.ExchangeRateSnapshot) (models.ExchangeRateSnapshot, error) {
				return r.sanitizeSnapshot(p.Name(), base, s)
			})
		if err != nil {
			continue
		}
		s.IsCache = false
		r.save(ctx, snapshotKey(base), s)
		return s, true
	}

	if hasCache {
		r.metrics.Fallback(kindFX, "stale_cache")
		r.logger.Warn("All FX providers failed, serving stale snapshot",
			zap.String("base", base), zap.Duration("age", r.now().Sub(cached.Timestamp)))
		return cached, true
	}
	return models.ExchangeRateSnapshot{}, false
}

// sanitizeSnapshot drops rates that are non-positive or implausibly far from
// the static table, and rejects the snapshot if nothing usable is left.
func (r *PriceResolverImpl) sanitizeSnapshot(provider, base string, s models.ExchangeRateSnapshot) (models.ExchangeRateSnapshot, error) {
	if models.NormalizeCurrency(s.Base) != base {
		return s, apperrors.Malformed(provider, fmt.Errorf("snapshot base %s, want %s", s.Base, base))
	}
	clean := make(map[string]decimal.Decimal, len(s.Rates))
	checked, rejected := 0, 0
	for c, rate := range s.Rates {
		c = models.NormalizeCurrency(c)
		if !rate.IsPositive() {
			rejected++
			continue
		}
		if expected, ok := r.static.Rate(base, c); ok && c != base {
			checked++
			if rate.GreaterThan(expected.Mul(fxSanityFactor)) || rate.LessThan(expected.Div(fxSanityFactor)) {
				rejected++
				r.logger.Debug("Dropping implausible rate",
					zap.String("provider", provider), zap.String("pair", base+"/"+c),
					zap.String("rate", rate.String()), zap.String("expected", expected.String()))
				continue
			}
		}
		clean[c] = rate
	}
	if checked > 0 && rejected >= checked {
		return s, apperrors.OutOfRange(provider, "all %d checked %s rates implausible", checked, base)
	}
	s.Base = base
	s.Rates = clean
	s = s.WithBase()
	if len(s.Rates) <= 1 {
		return s, apperrors.OutOfRange(provider, "no usable %s rates", base)
	}
	return s, nil
}

// ResolveExchangeRate returns how many units of to one unit of from buys.
// Tiers: identity, direct snapshot, inverse of a cached snapshot, cross via
// USD, static table, then a degraded rate of 1.
func (r *PriceResolverImpl) ResolveExchangeRate(ctx context.Context, from, to string) models.RateQuote {
	from, to = models.NormalizeCurrency(from), models.NormalizeCurrency(to)
	now := r.now().UTC()

	if from == to {
		return models.RateQuote{From: from, To: to, Rate: decimal.NewFromInt(1), Timestamp: now, Source: models.SourceIdentity}
	}

	if s, ok := r.ResolveSnapshot(ctx, from); ok {
		if rate, ok := s.Rate(to); ok {
			return models.RateQuote{From: from, To: to, Rate: rate, Timestamp: s.Timestamp, IsCache: s.IsCache, Source: s.Source}
		}
	}

	if s, ok := r.cachedSnapshot(ctx, to); ok {
		if inv, ok := s.Rate(from); ok {
			return models.RateQuote{From: from, To: to, Rate: models.GetInverseRate(inv), Timestamp: s.Timestamp, IsCache: s.IsCache, Source: s.Source}
		}
	}

	if from != models.CurrencyUSD {
		if s, ok := r.ResolveSnapshot(ctx, models.CurrencyUSD); ok {
			rf, okFrom := s.Rate(from)
			rt, okTo := s.Rate(to)
			if okFrom && okTo {
				return models.RateQuote{From: from, To: to, Rate: rt.DivRound(rf, 16), Timestamp: s.Timestamp, IsCache: s.IsCache, Source: s.Source}
			}
		}
	}

	if rate, ok := r.static.Rate(from, to); ok {
		r.metrics.Fallback(kindFX, "static")
		r.logger.Info("Using static exchange rate", zap.String("from", from), zap.String("to", to))
		return models.RateQuote{From: from, To: to, Rate: rate, Timestamp: now, IsCache: true, Source: models.SourceStatic}
	}

	r.metrics.Fallback(kindFX, "unavailable")
	r.logger.Warn("No exchange rate available", zap.String("from", from), zap.String("to", to),
		zap.Error(apperrors.ErrConversionUnavailable))
	return models.RateQuote{From: from, To: to, Rate: decimal.NewFromInt(1), Timestamp: now, IsCache: true, Source: models.SourceUnavailable, Degraded: true}
}

// ResolveCryptoPrices prices each symbol from fresh cache, providers, USD
// derivation or stale cache. Coins nothing can price are left out.
func (r *PriceResolverImpl) ResolveCryptoPrices(ctx context.Context, symbols []string, currency string) map[string]models.PriceQuote {
	currency = models.NormalizeCurrency(currency)
	out := make(map[string]models.PriceQuote, len(symbols))
	stale := make(map[string]models.PriceQuote)

	var missing []string
	for _, sym := range uniqueSymbols(symbols) {
		q, ok := r.cachedQuote(ctx, cryptoKey(sym, currency))
		switch {
		case ok && r.isFresh(q.Timestamp):
			r.metrics.CacheLookup(kindCrypto, "fresh")
			out[sym] = q
		case ok:
			stale[sym] = q
			missing = append(missing, sym)
		default:
			missing = append(missing, sym)
		}
	}
	if len(missing) == 0 {
		return out
	}
	r.metrics.CacheLookup(kindCrypto, "miss")

	sig := "crypto:" + currency + ":" + strings.Join(missing, ",")
	v, _, _ := r.group.Do(sig, func() (any, error) {
		return r.fetchCrypto(ctx, missing, currency), nil
	})
	fetched := v.(map[string]models.PriceQuote)

	var unresolved []string
	for _, sym := range missing {
		if q, ok := fetched[sym]; ok {
			out[sym] = q
			continue
		}
		if q, ok := stale[sym]; ok {
			q.IsCache = true
			r.metrics.Fallback(kindCrypto, "stale_cache")
			out[sym] = q
			continue
		}
		unresolved = append(unresolved, sym)
	}

	if len(unresolved) > 0 && currency != models.CurrencyUSD {
		rate := r.ResolveExchangeRate(ctx, models.CurrencyUSD, currency)
		if !rate.Degraded {
			for sym, q := range r.ResolveCryptoPrices(ctx, unresolved, models.CurrencyUSD) {
				r.metrics.Fallback(kindCrypto, "derived")
				out[sym] = models.PriceQuote{
					Commodity:    q.Commodity,
					PricePerUnit: q.PricePerUnit.Mul(rate.Rate),
					Currency:     currency,
					Timestamp:    q.Timestamp,
					IsCache:      q.IsCache || rate.IsCache,
					Source:       q.Source,
				}
			}
		}
	}
	return out
}

func (r *PriceResolverImpl) fetchCrypto(parent context.Context, symbols []string, currency string) map[string]models.PriceQuote {
	ctx, cancel := r.chainContext(parent)
	defer cancel()

	out := make(map[string]models.PriceQuote, len(symbols))
	remaining := symbols
	for _, p := range r.crypto {
		if len(remaining) == 0 {
			break
		}
		p := p
		want := remaining
		prices, err := attempt(ctx, r, p.Name(), false,
			func(ctx context.Context) (map[string]decimal.Decimal, error) {
				return p.FetchCryptoPrices(ctx, want, currency)
			},
			func(m map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
				for sym, price := range m {
					if !price.IsPositive() {
						delete(m, sym)
					}
				}
				return m, nil
			})
		if err != nil {
			continue
		}

		now := r.now().UTC()
		var next []string
		for _, sym := range want {
			price, ok := prices[sym]
			if !ok {
				next = append(next, sym)
				continue
			}
			q := models.PriceQuote{
				Commodity:    models.Commodity(sym),
				PricePerUnit: price,
				Currency:     currency,
				Timestamp:    now,
				Source:       p.Name(),
				Direct:       true,
			}
			r.save(ctx, cryptoKey(sym, currency), q)
			out[sym] = q
		}
		remaining = next
	}
	return out
}

func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
