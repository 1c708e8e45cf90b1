package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tropicaldog17/zakat/internal/metrics"
	"github.com/tropicaldog17/zakat/internal/models"
	"github.com/tropicaldog17/zakat/internal/services"
	"github.com/tropicaldog17/zakat/internal/zakat"
)

var quoteTime = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

// stubResolver prices gold at 100 and silver at 1 per gram in any currency,
// and converts EUR to USD at 1.1.
type stubResolver struct{}

func (stubResolver) ResolveCommodityPrice(_ context.Context, c models.Commodity, currency string) models.PriceQuote {
	q := models.PriceQuote{
		Commodity: c, Currency: currency, Timestamp: quoteTime,
		Source: "metalpriceapi", Direct: true,
		PricePerUnit: decimal.NewFromInt(100),
	}
	if c == models.CommoditySilver {
		q.PricePerUnit = decimal.NewFromInt(1)
		q.Source = models.SourceFallback
		q.IsCache = true
		q.Timestamp = quoteTime.Add(-time.Hour)
	}
	return q
}

func (stubResolver) ResolveExchangeRate(_ context.Context, from, to string) models.RateQuote {
	q := models.RateQuote{From: from, To: to, Timestamp: quoteTime, Source: "frankfurter"}
	switch {
	case from == to:
		q.Rate, q.Source = decimal.NewFromInt(1), models.SourceIdentity
	case from == "EUR" && to == "USD":
		q.Rate = decimal.RequireFromString("1.1")
	default:
		q.Rate, q.Source, q.Degraded, q.IsCache = decimal.NewFromInt(1), models.SourceUnavailable, true, true
	}
	return q
}

func (stubResolver) ResolveSnapshot(context.Context, string) (models.ExchangeRateSnapshot, bool) {
	return models.ExchangeRateSnapshot{}, false
}

func (stubResolver) ResolveCryptoPrices(_ context.Context, symbols []string, currency string) map[string]models.PriceQuote {
	out := make(map[string]models.PriceQuote)
	for _, s := range symbols {
		if strings.EqualFold(s, "BTC") {
			out["BTC"] = models.PriceQuote{
				Commodity: "BTC", PricePerUnit: decimal.NewFromInt(60000),
				Currency: currency, Timestamp: quoteTime, Source: "coingecko", Direct: true,
			}
		}
	}
	return out
}

type fakeHealth struct{ err error }

func (f fakeHealth) Health() error { return f.err }

func newTestRouter(t *testing.T, mutate func(*RouterDeps)) http.Handler {
	t.Helper()
	prices := stubResolver{}
	converter := services.NewCurrencyConverter(prices, zap.NewNop())
	nisab := services.NewNisabResolver(prices)
	deps := RouterDeps{
		Prices:    prices,
		Converter: converter,
		Nisab:     nisab,
		Zakat:     services.NewZakatService(prices, converter, nisab, zakat.DefaultAggregator(), zap.NewNop()),
		Policy:    zakat.LowerOfGoldSilver{},
		Health:    map[string]HealthChecker{"database": fakeHealth{}},
		Logger:    zap.NewNop(),
	}
	if mutate != nil {
		mutate(&deps)
	}
	return NewRouter(deps)
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestMetalPricesEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := do(t, router, http.MethodGet, "/api/prices/metals?currency=eur", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp MetalPricesResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 100.0, resp.Gold)
	assert.Equal(t, 1.0, resp.Silver)
	assert.Equal(t, "EUR", resp.Currency)
	assert.True(t, resp.IsCache, "one fallback quote marks the pair as cached")
	assert.Equal(t, "metalpriceapi,fallback", resp.Source)
	assert.True(t, resp.LastUpdated.Equal(quoteTime.Add(-time.Hour)))
}

func TestMetalPricesDefaultsToUSD(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/api/prices/metals", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp MetalPricesResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "USD", resp.Currency)
}

func TestCryptoPricesEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("missing symbols", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/prices/crypto", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unpriced symbols are omitted", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/prices/crypto?symbols=btc,%20doge", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]models.PriceQuote
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.True(t, resp["BTC"].PricePerUnit.Equal(decimal.NewFromInt(60000)))
	})
}

func TestNisabEndpoint(t *testing.T) {
	tests := []struct {
		name      string
		policy    zakat.ThresholdPolicy
		threshold int64
	}{
		{"lower of the two", zakat.LowerOfGoldSilver{}, 595},
		{"gold standard", zakat.GoldStandard{}, 8500},
		{"silver standard", zakat.SilverStandard{}, 595},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, func(d *RouterDeps) { d.Policy = tt.policy })

			rr := do(t, router, http.MethodGet, "/api/nisab?currency=EUR", nil)
			require.Equal(t, http.StatusOK, rr.Code)

			var resp NisabResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.policy.Name(), resp.Policy)
			assert.True(t, resp.Threshold.Equal(decimal.NewFromInt(tt.threshold)), "got %s", resp.Threshold)
			assert.True(t, resp.GoldThreshold.Equal(decimal.NewFromInt(8500)))
			assert.True(t, resp.SilverThreshold.Equal(decimal.NewFromInt(595)))
			assert.Equal(t, "EUR", resp.Currency)
			assert.True(t, resp.IsDirectGoldPrice)
		})
	}
}

func TestFXEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("rate", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/fx/rate?from=eur&to=usd", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var q models.RateQuote
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&q))
		assert.True(t, q.Rate.Equal(decimal.RequireFromString("1.1")))
		assert.Equal(t, "EUR", q.From)
		assert.False(t, q.Degraded)
	})

	t.Run("convert", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/fx/convert?amount=100&from=EUR&to=USD", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var c services.Conversion
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&c))
		assert.True(t, c.Amount.Equal(decimal.NewFromInt(110)), "got %s", c.Amount)
		assert.True(t, c.Original.Equal(decimal.NewFromInt(100)))
	})

	t.Run("degraded conversion passes the amount through", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/fx/convert?amount=42&from=CHF&to=USD", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var c services.Conversion
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&c))
		assert.True(t, c.Degraded)
		assert.True(t, c.Amount.Equal(decimal.NewFromInt(42)))
	})

	t.Run("bad amount", func(t *testing.T) {
		for _, target := range []string{
			"/api/fx/convert?from=EUR&to=USD",
			"/api/fx/convert?amount=abc&from=EUR&to=USD",
		} {
			rr := do(t, router, http.MethodGet, target, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		}
	})
}

func TestCalculateEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	body := `{
		"currency": "usd",
		"cash": {"hawl_met": true, "values": {"cash_on_hand": 2000, "savings_accounts": "8000"}},
		"real_estate": {"hawl_met": true, "values": {"primary_residence_value": 300000}}
	}`
	rr := do(t, router, http.MethodPost, "/api/zakat/calculate", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var report models.ZakatReport
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&report))
	assert.Equal(t, "USD", report.Currency)
	assert.True(t, report.Combined.TotalValue.Equal(decimal.NewFromInt(310000)), "got %s", report.Combined.TotalValue)
	assert.True(t, report.Combined.ZakatableValue.Equal(decimal.NewFromInt(10000)))
	assert.True(t, report.Combined.ZakatDue.Equal(decimal.NewFromInt(250)))
	assert.True(t, report.Combined.MeetsNisab)
	assert.Equal(t, "lower", report.ThresholdPolicy)
	assert.NotEmpty(t, report.Warnings, "silver came from the fallback table")
}

func TestCalculateDefaultsCurrency(t *testing.T) {
	body := `{"cash": {"hawl_met": true, "values": {"cash_on_hand": 100}}}`
	rr := do(t, newTestRouter(t, nil), http.MethodPost, "/api/zakat/calculate", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var report models.ZakatReport
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&report))
	assert.Equal(t, "USD", report.Currency)
}

func TestCalculateValidation(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed json", `{"cash": `, "body"},
		{"negative amount", `{"currency": "USD", "cash": {"values": {"savings_accounts": -5}}}`, "cash.values.savings_accounts"},
		{"bad currency", `{"currency": "DOLLARS"}`, "currency"},
		{"unassigned currency", `{"currency": "XYZ"}`, "currency"},
		{"non-letter currency", `{"currency": "1$A"}`, "currency"},
		{"bad foreign currency", `{"currency": "USD", "cash": {"values": {"foreign_currency_entries": [{"amount": 5, "currency": "XYZ"}]}}}`, "cash.values.foreign_currency_entries[0].currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodPost, "/api/zakat/calculate", strings.NewReader(tt.body))
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp ValidationErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			require.NotEmpty(t, resp.Errors)
			fields := make([]string, 0, len(resp.Errors))
			for _, e := range resp.Errors {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Message)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestCurrencyQueryValidation(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, target := range []string{
		"/api/prices/metals?currency=XYZ",
		"/api/prices/metals?currency=1$A",
		"/api/prices/crypto?symbols=BTC&currency=XYZ",
		"/api/nisab?currency=XYZ",
		"/api/nisab?currency=1$A",
		"/api/fx/rate?from=XYZ&to=USD",
		"/api/fx/rate?from=EUR&to=1$A",
		"/api/fx/convert?amount=1&from=XYZ&to=USD",
		"/api/fx/convert?amount=1&from=USD&to=US",
	} {
		rr := do(t, router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		assert.Contains(t, rr.Body.String(), "ISO 4217", target)
	}

	rr := do(t, router, http.MethodGet, "/api/nisab?currency=eur", nil)
	assert.Equal(t, http.StatusOK, rr.Code, "lower case codes are normalized")
}

type failingService struct{}

func (failingService) Calculate(context.Context, models.ZakatRequest) (*models.ZakatReport, error) {
	return nil, errors.New("boom")
}

func TestCalculateInternalError(t *testing.T) {
	router := newTestRouter(t, func(d *RouterDeps) { d.Zakat = failingService{} })

	rr := do(t, router, http.MethodPost, "/api/zakat/calculate", bytes.NewBufferString(`{"currency":"USD"}`))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHealthEndpoint(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "ok", resp["database"])

	router := newTestRouter(t, func(d *RouterDeps) {
		d.Health = map[string]HealthChecker{"database": fakeHealth{err: errors.New("connection refused")}}
	})
	rr = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouterMiddleware(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("assigns a request id", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/health", nil)
		assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
	})

	t.Run("keeps the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	})

	t.Run("answers preflight", func(t *testing.T) {
		rr := do(t, router, http.MethodOptions, "/api/zakat/calculate", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("rejects wrong method", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/nisab", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := newTestRouter(t, func(d *RouterDeps) {
		d.Metrics = metrics.New(reg)
		d.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	})

	do(t, router, http.MethodGet, "/api/nisab", nil)

	rr := do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `zakat_http_requests_total{method="GET",route="/api/nisab",status="200"} 1`)
}

func TestSwaggerRoute(t *testing.T) {
	router := newTestRouter(t, func(d *RouterDeps) { d.Swagger = true })

	rr := do(t, router, http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, newTestRouter(t, nil), http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
