package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/zakat/internal/cache"
	apperrors "github.com/tropicaldog17/zakat/internal/errors"
	"github.com/tropicaldog17/zakat/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

// fakeMetalProvider answers from a "commodity:CUR" → price table.
type fakeMetalProvider struct {
	name   string
	paid   bool
	now    func() time.Time
	prices map[string]string
	err    error
	delay  time.Duration
	// currencies the provider answers unsupported-code for
	unsupported map[string]bool

	mu    sync.Mutex
	calls int
}

func (f *fakeMetalProvider) Name() string { return f.name }
func (f *fakeMetalProvider) Paid() bool   { return f.paid }

func (f *fakeMetalProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeMetalProvider) FetchMetalPrice(ctx context.Context, c models.Commodity, currency string) (models.PriceQuote, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.PriceQuote{}, apperrors.Unavailable(f.name, ctx.Err())
		}
	}
	if f.err != nil {
		return models.PriceQuote{}, f.err
	}
	if f.unsupported[currency] {
		return models.PriceQuote{}, apperrors.Unsupported(f.name, fmt.Errorf("unsupported-code %s", currency))
	}
	p, ok := f.prices[fmt.Sprintf("%s:%s", c, currency)]
	if !ok {
		return models.PriceQuote{}, apperrors.Unavailable(f.name, fmt.Errorf("no %s price in %s", c, currency))
	}
	return models.PriceQuote{
		Commodity: c, PricePerUnit: dec(p), Currency: currency,
		Timestamp: f.now(), Source: f.name, Direct: true,
	}, nil
}

// fakeFXProvider answers from a base → {currency: rate} table.
type fakeFXProvider struct {
	name  string
	paid  bool
	now   func() time.Time
	snaps map[string]map[string]string
	calls atomic.Int32
}

func (f *fakeFXProvider) Name() string { return f.name }
func (f *fakeFXProvider) Paid() bool   { return f.paid }

func (f *fakeFXProvider) FetchRates(_ context.Context, base string) (models.ExchangeRateSnapshot, error) {
	f.calls.Add(1)
	table, ok := f.snaps[base]
	if !ok {
		return models.ExchangeRateSnapshot{}, apperrors.Unavailable(f.name, fmt.Errorf("no rates for %s", base))
	}
	rates := make(map[string]decimal.Decimal, len(table))
	for c, r := range table {
		rates[c] = dec(r)
	}
	return models.ExchangeRateSnapshot{Base: base, Rates: rates, Timestamp: f.now(), Source: f.name}.WithBase(), nil
}

// fakeCryptoProvider answers from a "SYM:CUR" → price table.
type fakeCryptoProvider struct {
	name   string
	prices map[string]string
	err    error
	calls  atomic.Int32
}

func (f *fakeCryptoProvider) Name() string { return f.name }

func (f *fakeCryptoProvider) FetchCryptoPrices(_ context.Context, symbols []string, currency string) (map[string]decimal.Decimal, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]decimal.Decimal)
	for _, s := range symbols {
		if p, ok := f.prices[s+":"+currency]; ok {
			out[s] = dec(p)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.Malformed(f.name, fmt.Errorf("no %s prices", currency))
	}
	return out, nil
}

// fakeBudget reports has from HasBudget; Acquire grants while has and not
// deny, which lets a test lose the race between the two.
type fakeBudget struct {
	has      bool
	deny     bool
	acquired atomic.Int32
}

func (b *fakeBudget) HasBudget(context.Context) bool { return b.has }

func (b *fakeBudget) Acquire(context.Context) bool {
	if !b.has || b.deny {
		return false
	}
	b.acquired.Add(1)
	return true
}

func testResolverConfig() ResolverConfig {
	return ResolverConfig{
		TTL:              time.Hour,
		EmergencyMaxAge:  24 * time.Hour,
		ProviderTimeout:  time.Second,
		ChainTimeout:     5 * time.Second,
		FailureThreshold: 3,
		Cooldown:         time.Minute,
	}
}

func newTestResolver(t *testing.T, clock *testClock, opts ...ResolverOption) *PriceResolverImpl {
	t.Helper()
	store := cache.NewMemoryStore(cache.WithClock(clock.Now), cache.WithMemoryCleanup(0))
	t.Cleanup(func() { store.Close() })
	base := []ResolverOption{WithResolverClock(clock.Now), WithResolverConfig(testResolverConfig())}
	return NewPriceResolver(store, append(base, opts...)...)
}

func TestResolveCommodityPrice_FallsThroughToNextProvider(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	p1 := &fakeMetalProvider{name: "provider1", now: clock.Now, err: apperrors.Unavailable("provider1", errors.New("status 500"))}
	p2 := &fakeMetalProvider{name: "provider2", now: clock.Now, prices: map[string]string{"gold:USD": "70"}}
	r := newTestResolver(t, clock, WithMetalProviders(p1, p2))

	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "usd")
	assert.Equal(t, "provider2", q.Source)
	assert.False(t, q.IsCache)
	assert.True(t, q.Direct)
	assert.Equal(t, "USD", q.Currency)
	assertDec(t, "70", q.PricePerUnit)

	// Served from cache within the TTL, without touching providers.
	clock.Advance(30 * time.Minute)
	again := r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "provider2", again.Source)
	assert.False(t, again.IsCache, "fresh hits keep the stored flag")
	assert.Equal(t, 1, p1.Calls())
	assert.Equal(t, 1, p2.Calls())
}

func TestResolveCommodityPrice_StaleCacheAfterFailure(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	metal := &fakeMetalProvider{name: "metals", now: clock.Now, prices: map[string]string{"gold:EUR": "64"}}
	fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "0.9"}}}
	r := newTestResolver(t, clock, WithMetalProviders(metal), WithFXProviders(fx))

	first := r.ResolveCommodityPrice(ctx, models.CommodityGold, "EUR")
	require.False(t, first.IsCache)

	clock.Advance(2 * time.Hour)
	metal.err = apperrors.Unavailable("metals", errors.New("down"))

	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "EUR")
	assert.True(t, q.IsCache)
	assert.Equal(t, "metals", q.Source)
	assertDec(t, "64", q.PricePerUnit)
	assert.Equal(t, 2, metal.Calls())
	assert.Zero(t, fx.calls.Load(), "no further network calls once the stale entry is served")
}

func TestResolveCommodityPrice_StaleBeyondMaxAgeIsDropped(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	metal := &fakeMetalProvider{name: "metals", now: clock.Now, prices: map[string]string{"silver:USD": "0.9"}}
	r := newTestResolver(t, clock, WithMetalProviders(metal))

	r.ResolveCommodityPrice(ctx, models.CommoditySilver, "USD")
	clock.Advance(25 * time.Hour)
	metal.err = apperrors.Unavailable("metals", errors.New("down"))

	q := r.ResolveCommodityPrice(ctx, models.CommoditySilver, "USD")
	assert.Equal(t, models.SourceFallback, q.Source)
	assertDec(t, "0.95", q.PricePerUnit)
}

func TestResolveCommodityPrice_HardcodedFallback(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	down := &fakeMetalProvider{name: "down", now: clock.Now, err: apperrors.Unavailable("down", errors.New("refused"))}
	r := newTestResolver(t, clock, WithMetalProviders(down))

	usd := r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, models.SourceFallback, usd.Source)
	assert.True(t, usd.IsCache)
	assert.False(t, usd.Direct)
	assertDec(t, "75", usd.PricePerUnit)

	eur := r.ResolveCommodityPrice(ctx, models.CommodityGold, "EUR")
	assert.Equal(t, models.SourceFallback, eur.Source)
	assert.Equal(t, "EUR", eur.Currency)
	assertDec(t, "69", eur.PricePerUnit)

	unknown := r.ResolveCommodityPrice(ctx, models.CommoditySilver, "XYZ")
	assert.Equal(t, models.SourceFallback, unknown.Source)
	assert.Equal(t, "USD", unknown.Currency, "no static rate, so the reference price stays in USD")
	assertDec(t, "0.95", unknown.PricePerUnit)

	// Fallbacks are never cached.
	var q models.PriceQuote
	assert.True(t, cache.IsMiss(r.store.Get(ctx, metalKey(models.CommodityGold, "USD"), &q)))
}

func TestResolveCommodityPrice_NoProviders(t *testing.T) {
	r := newTestResolver(t, newTestClock())
	q := r.ResolveCommodityPrice(context.Background(), models.CommoditySilver, "USD")
	assert.Equal(t, models.SourceFallback, q.Source)
	assertDec(t, "0.95", q.PricePerUnit)
}

func TestResolveCommodityPrice_RejectsImplausiblePrice(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	bad := &fakeMetalProvider{name: "bad", now: clock.Now, prices: map[string]string{"gold:USD": "5000"}}
	good := &fakeMetalProvider{name: "good", now: clock.Now, prices: map[string]string{"gold:USD": "72.5"}}
	r := newTestResolver(t, clock, WithMetalProviders(bad, good))

	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "good", q.Source)
	assertDec(t, "72.5", q.PricePerUnit)
	assert.Equal(t, 1, bad.Calls())
}

func TestResolveCommodityPrice_DerivesThroughUSD(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	metal := &fakeMetalProvider{name: "metals", now: clock.Now, prices: map[string]string{"gold:USD": "70"}}
	fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "0.9"}}}
	r := newTestResolver(t, clock, WithMetalProviders(metal), WithFXProviders(fx))

	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "EUR")
	assertDec(t, "63", q.PricePerUnit)
	assert.Equal(t, "EUR", q.Currency)
	assert.Equal(t, "metals", q.Source)
	assert.False(t, q.Direct)
	assert.False(t, q.IsCache)

	calls := metal.Calls()
	again := r.ResolveCommodityPrice(ctx, models.CommodityGold, "EUR")
	assertDec(t, "63", again.PricePerUnit)
	assert.Equal(t, calls, metal.Calls(), "derived price is cached")
}

func TestResolveCommodityPrice_DeduplicatesConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	slow := &fakeMetalProvider{name: "slow", now: clock.Now, delay: 100 * time.Millisecond, prices: map[string]string{"gold:USD": "70"}}
	r := newTestResolver(t, clock, WithMetalProviders(slow))

	var wg sync.WaitGroup
	results := make([]models.PriceQuote, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, slow.Calls())
	for _, q := range results {
		assert.Equal(t, "slow", q.Source)
		assertDec(t, "70", q.PricePerUnit)
	}
}

func TestResolveCommodityPrice_CallerCancellationDoesNotFailFlight(t *testing.T) {
	clock := newTestClock()
	metal := &fakeMetalProvider{name: "metals", now: clock.Now, prices: map[string]string{"gold:USD": "70"}}
	r := newTestResolver(t, clock, WithMetalProviders(metal))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "metals", q.Source)
}

func TestResolveCommodityPrice_CircuitBreakerSkipsProvider(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	flaky := &fakeMetalProvider{name: "flaky", now: clock.Now, err: apperrors.Unavailable("flaky", errors.New("timeout"))}
	r := newTestResolver(t, clock, WithMetalProviders(flaky))

	for i := 0; i < 5; i++ {
		r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	}
	assert.Equal(t, 3, flaky.Calls(), "breaker opens after three consecutive failures")
	assert.Equal(t, BreakerOpen, r.Breaker("flaky").State())

	clock.Advance(time.Minute)
	flaky.err = nil
	flaky.prices = map[string]string{"gold:USD": "70"}

	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "flaky", q.Source)
	assert.Equal(t, 4, flaky.Calls())
	assert.Equal(t, BreakerClosed, r.Breaker("flaky").State())
}

func TestResolveCommodityPrice_UnsupportedCurrencyKeepsBreakerClosed(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	metals := &fakeMetalProvider{
		name:        "metals",
		now:         clock.Now,
		prices:      map[string]string{"gold:USD": "70"},
		unsupported: map[string]bool{"XYZ": true},
	}
	r := newTestResolver(t, clock, WithMetalProviders(metals))

	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	require.Equal(t, "metals", q.Source)

	for i := 0; i < 3; i++ {
		r.ResolveCommodityPrice(ctx, models.CommodityGold, "XYZ")
	}
	assert.Equal(t, BreakerClosed, r.Breaker("metals").State(), "one currency's rejection is not a provider failure")

	clock.Advance(2 * time.Hour)
	metals.prices["gold:USD"] = "72"
	r.ResolveCommodityPrice(ctx, models.CommodityGold, "XYZ")
	assert.Equal(t, BreakerClosed, r.Breaker("metals").State())

	q = r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "metals", q.Source)
	assert.False(t, q.IsCache, "USD must come live, not from the stale entry")
	assertDec(t, "72", q.PricePerUnit)
	assert.Equal(t, BreakerClosed, r.Breaker("metals").State())
}

func TestResolveCommodityPrice_BudgetGatesPaidProviders(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	paid := &fakeMetalProvider{name: "paid", paid: true, now: clock.Now, prices: map[string]string{"gold:USD": "71"}}
	free := &fakeMetalProvider{name: "free", now: clock.Now, prices: map[string]string{"gold:USD": "70"}}

	exhausted := &fakeBudget{has: false}
	r := newTestResolver(t, clock, WithMetalProviders(paid, free), WithBudget(exhausted))
	q := r.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "free", q.Source)
	assert.Zero(t, paid.Calls())
	assert.Equal(t, BreakerClosed, r.Breaker("paid").State(), "a skipped call is not a failure")

	available := &fakeBudget{has: true}
	r2 := newTestResolver(t, clock, WithMetalProviders(paid, free), WithBudget(available))
	q = r2.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "paid", q.Source)
	assert.Equal(t, int32(1), available.acquired.Load())

	// The budget ran out between the check and the consume.
	raced := &fakeBudget{has: true, deny: true}
	paid2 := &fakeMetalProvider{name: "paid", paid: true, now: clock.Now, prices: map[string]string{"gold:USD": "71"}}
	r3 := newTestResolver(t, clock, WithMetalProviders(paid2, free), WithBudget(raced))
	q = r3.ResolveCommodityPrice(ctx, models.CommodityGold, "USD")
	assert.Equal(t, "free", q.Source)
	assert.Zero(t, paid2.Calls())
	assert.Equal(t, BreakerClosed, r3.Breaker("paid").State())
}

func TestResolveExchangeRate_Tiers(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()

	t.Run("identity", func(t *testing.T) {
		r := newTestResolver(t, clock)
		q := r.ResolveExchangeRate(ctx, "eur", "EUR")
		assert.Equal(t, models.SourceIdentity, q.Source)
		assertDec(t, "1", q.Rate)
	})

	t.Run("direct", func(t *testing.T) {
		fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "0.9"}}}
		r := newTestResolver(t, clock, WithFXProviders(fx))
		q := r.ResolveExchangeRate(ctx, "USD", "EUR")
		assert.Equal(t, "fx", q.Source)
		assert.False(t, q.IsCache)
		assertDec(t, "0.9", q.Rate)

		r.ResolveExchangeRate(ctx, "USD", "EUR")
		assert.Equal(t, int32(1), fx.calls.Load(), "snapshot is cached")
	})

	t.Run("inverse", func(t *testing.T) {
		fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{"EUR": {"USD": "1.25"}}}
		r := newTestResolver(t, clock, WithFXProviders(fx))
		_, ok := r.ResolveSnapshot(ctx, "EUR")
		require.True(t, ok)

		q := r.ResolveExchangeRate(ctx, "USD", "EUR")
		assertDec(t, "0.8", q.Rate)
		assert.Equal(t, "fx", q.Source)
	})

	t.Run("cross via USD", func(t *testing.T) {
		fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "0.8", "GBP": "0.6"}}}
		r := newTestResolver(t, clock, WithFXProviders(fx))
		q := r.ResolveExchangeRate(ctx, "EUR", "GBP")
		assertDec(t, "0.75", q.Rate)
		assert.Equal(t, "fx", q.Source)
	})

	t.Run("static", func(t *testing.T) {
		r := newTestResolver(t, clock)
		q := r.ResolveExchangeRate(ctx, "USD", "GBP")
		assert.Equal(t, models.SourceStatic, q.Source)
		assert.True(t, q.IsCache)
		assert.False(t, q.Degraded)
		assertDec(t, "0.79", q.Rate)
	})

	t.Run("degraded", func(t *testing.T) {
		r := newTestResolver(t, clock)
		q := r.ResolveExchangeRate(ctx, "XYZ", "ABC")
		assert.True(t, q.Degraded)
		assert.Equal(t, models.SourceUnavailable, q.Source)
		assertDec(t, "1", q.Rate)
	})
}

func TestResolveSnapshot_DropsImplausibleRates(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{
		"USD": {"EUR": "500", "GBP": "0.8", "JPY": "151"},
	}}
	r := newTestResolver(t, clock, WithFXProviders(fx))

	snap, ok := r.ResolveSnapshot(ctx, "USD")
	require.True(t, ok)
	_, hasEUR := snap.Rate("EUR")
	assert.False(t, hasEUR)

	q := r.ResolveExchangeRate(ctx, "USD", "EUR")
	assert.Equal(t, models.SourceStatic, q.Source, "dropped pair falls back to the static table")
	assertDec(t, "0.92", q.Rate)
}

func TestResolveSnapshot_RejectsWhenEverythingImplausible(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	bad := &fakeFXProvider{name: "bad", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "500", "GBP": "0.0001"}}}
	good := &fakeFXProvider{name: "good", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "0.91"}}}
	r := newTestResolver(t, clock, WithFXProviders(bad, good))

	snap, ok := r.ResolveSnapshot(ctx, "USD")
	require.True(t, ok)
	assert.Equal(t, "good", snap.Source)
}

func TestResolveSnapshot_StaleAfterFailure(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "0.9"}}}
	r := newTestResolver(t, clock, WithFXProviders(fx))

	_, ok := r.ResolveSnapshot(ctx, "USD")
	require.True(t, ok)

	clock.Advance(3 * time.Hour)
	fx.snaps = nil
	snap, ok := r.ResolveSnapshot(ctx, "USD")
	require.True(t, ok)
	assert.True(t, snap.IsCache)

	q := r.ResolveExchangeRate(ctx, "USD", "EUR")
	assert.True(t, q.IsCache)
	assertDec(t, "0.9", q.Rate)
}

func TestResolveCryptoPrices(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	cg := &fakeCryptoProvider{name: "coins", prices: map[string]string{"BTC:USD": "60000", "ETH:USD": "3000"}}
	r := newTestResolver(t, clock, WithCryptoProviders(cg))

	got := r.ResolveCryptoPrices(ctx, []string{"btc", "ETH", "BTC", "UNKNOWN"}, "USD")
	require.Len(t, got, 2)
	assertDec(t, "60000", got["BTC"].PricePerUnit)
	assertDec(t, "3000", got["ETH"].PricePerUnit)
	assert.Equal(t, "coins", got["BTC"].Source)
	assert.Equal(t, int32(1), cg.calls.Load())

	// Cached coins are not refetched.
	r.ResolveCryptoPrices(ctx, []string{"BTC", "ETH"}, "USD")
	assert.Equal(t, int32(1), cg.calls.Load())

	clock.Advance(2 * time.Hour)
	cg.err = apperrors.Unavailable("coins", errors.New("429"))
	stale := r.ResolveCryptoPrices(ctx, []string{"BTC"}, "USD")
	require.Contains(t, stale, "BTC")
	assert.True(t, stale["BTC"].IsCache)
}

func TestResolveCryptoPrices_DerivesThroughUSD(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	cg := &fakeCryptoProvider{name: "coins", prices: map[string]string{"BTC:USD": "60000"}}
	fx := &fakeFXProvider{name: "fx", now: clock.Now, snaps: map[string]map[string]string{"USD": {"EUR": "0.9"}}}
	r := newTestResolver(t, clock, WithCryptoProviders(cg), WithFXProviders(fx))

	got := r.ResolveCryptoPrices(ctx, []string{"BTC"}, "EUR")
	require.Contains(t, got, "BTC")
	assertDec(t, "54000", got["BTC"].PricePerUnit)
	assert.Equal(t, "EUR", got["BTC"].Currency)
}

func TestResolveCryptoPrices_NothingAvailable(t *testing.T) {
	r := newTestResolver(t, newTestClock())
	assert.Empty(t, r.ResolveCryptoPrices(context.Background(), []string{"BTC"}, "USD"))
	assert.Empty(t, r.ResolveCryptoPrices(context.Background(), nil, "USD"))
}
