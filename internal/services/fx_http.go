package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/zakat/internal/errors"
	"github.com/tropicaldog17/zakat/internal/models"
)

// HTTPFXProvider reads `{rates: {CUR: n}}` style endpoints. exchangerate-api
// v6 nests them under conversion_rates instead; both are accepted.
type HTTPFXProvider struct {
	name       string
	baseURL    string
	query      string
	paid       bool
	httpClient *http.Client
	now        func() time.Time
}

// NewExchangeRateAPIProvider uses exchangerate-api.com: the keyless v4
// endpoint, or v6 when apiKey is set.
func NewExchangeRateAPIProvider(apiKey string, timeout time.Duration) *HTTPFXProvider {
	baseURL := "https://api.exchangerate-api.com/v4/latest"
	if apiKey != "" {
		baseURL = "https://v6.exchangerate-api.com/v6/" + apiKey + "/latest"
	}
	return &HTTPFXProvider{
		name:       "exchangerate-api",
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
		now:        time.Now,
	}
}

// NewOpenERAPIProvider uses open.er-api.com, the free tier of the same API.
func NewOpenERAPIProvider(timeout time.Duration) *HTTPFXProvider {
	return &HTTPFXProvider{
		name:       "open.er-api",
		baseURL:    "https://open.er-api.com/v6/latest",
		httpClient: newHTTPClient(timeout),
		now:        time.Now,
	}
}

// NewFrankfurterProvider uses the ECB reference rates published by frankfurter.app.
func NewFrankfurterProvider(timeout time.Duration) *HTTPFXProvider {
	return &HTTPFXProvider{
		name:       "frankfurter",
		baseURL:    "https://api.frankfurter.app/latest",
		query:      "from",
		httpClient: newHTTPClient(timeout),
		now:        time.Now,
	}
}

// NewHTTPFXProvider builds a provider against any compatible endpoint. When
// query is empty the base currency is appended as a path segment, otherwise
// it is sent as that query parameter.
func NewHTTPFXProvider(name, baseURL, query string, paid bool, timeout time.Duration) *HTTPFXProvider {
	return &HTTPFXProvider{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		query:      query,
		paid:       paid,
		httpClient: newHTTPClient(timeout),
		now:        time.Now,
	}
}

func (p *HTTPFXProvider) Name() string { return p.name }
func (p *HTTPFXProvider) Paid() bool   { return p.paid }

// normalizeCurrencyForAPI maps stablecoins, which fiat APIs reject as a base,
// onto USD.
func normalizeCurrencyForAPI(symbol string) string {
	s := strings.ToUpper(symbol)
	if s == "USDT" || s == "USDC" {
		return "USD"
	}
	return s
}

func (p *HTTPFXProvider) url(base string) string {
	if p.query != "" {
		return fmt.Sprintf("%s?%s=%s", p.baseURL, p.query, base)
	}
	return fmt.Sprintf("%s/%s", p.baseURL, base)
}

// FetchRates returns every rate the endpoint publishes for base.
func (p *HTTPFXProvider) FetchRates(ctx context.Context, base string) (models.ExchangeRateSnapshot, error) {
	base = normalizeCurrencyForAPI(models.NormalizeCurrency(base))

	var raw map[string]any
	if err := getJSON(ctx, p.httpClient, p.name, p.url(base), nil, &raw); err != nil {
		return models.ExchangeRateSnapshot{}, err
	}

	// Optional result field check; treat missing as success
	if r, ok := raw["result"].(string); ok && r != "success" {
		msg, _ := raw["error-type"].(string)
		err := fmt.Errorf("API error: %s %s", r, msg)
		if msg == "unsupported-code" || msg == "malformed-request" {
			return models.ExchangeRateSnapshot{}, apperrors.Unsupported(p.name, err)
		}
		return models.ExchangeRateSnapshot{}, apperrors.Unavailable(p.name, err)
	}

	var ratesMap map[string]any
	if cr, ok := raw["conversion_rates"].(map[string]any); ok {
		ratesMap = cr
	} else if rr, ok := raw["rates"].(map[string]any); ok {
		ratesMap = rr
	} else {
		return models.ExchangeRateSnapshot{}, apperrors.Malformed(p.name, fmt.Errorf("response missing rates"))
	}

	rates := make(map[string]decimal.Decimal, len(ratesMap)+1)
	for cur, v := range ratesMap {
		d, err := toDecimal(v)
		if err != nil {
			return models.ExchangeRateSnapshot{}, apperrors.Malformed(p.name, fmt.Errorf("rate for %s: %w", cur, err))
		}
		rates[strings.ToUpper(cur)] = d
	}

	snap := models.ExchangeRateSnapshot{
		Base:      base,
		Rates:     rates,
		Timestamp: p.now().UTC(),
		Source:    p.name,
	}.WithBase()
	if err := snap.Validate(); err != nil {
		return models.ExchangeRateSnapshot{}, apperrors.Malformed(p.name, err)
	}
	return snap, nil
}
