package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/zakat/internal/errors"
	"github.com/tropicaldog17/zakat/internal/models"
)

// MetalPriceAPIProvider reads metalpriceapi.com. Its rates are ounces of
// metal per unit of the base currency; some plans also return the inverse
// under "<BASE><METAL>", which is preferred when present.
type MetalPriceAPIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewMetalPriceAPIProvider(apiKey string, timeout time.Duration) *MetalPriceAPIProvider {
	return &MetalPriceAPIProvider{
		apiKey:     apiKey,
		baseURL:    "https://api.metalpriceapi.com/v1/latest",
		httpClient: newHTTPClient(timeout),
		now:        time.Now,
	}
}

func (p *MetalPriceAPIProvider) Name() string { return "metalpriceapi" }
func (p *MetalPriceAPIProvider) Paid() bool   { return true }

type metalPriceAPIResponse struct {
	Success bool                   `json:"success"`
	Base    string                 `json:"base"`
	Rates   map[string]json.Number `json:"rates"`
	Error   *struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	} `json:"error"`
}

func (p *MetalPriceAPIProvider) FetchMetalPrice(ctx context.Context, commodity models.Commodity, currency string) (models.PriceQuote, error) {
	currency = models.NormalizeCurrency(currency)
	symbol := commodity.Symbol()

	q := url.Values{}
	q.Set("api_key", p.apiKey)
	q.Set("base", currency)
	q.Set("currencies", symbol)

	var body metalPriceAPIResponse
	if err := getJSON(ctx, p.httpClient, p.Name(), p.baseURL+"?"+q.Encode(), nil, &body); err != nil {
		return models.PriceQuote{}, err
	}
	if !body.Success {
		msg := "unsuccessful response"
		if body.Error != nil {
			msg = fmt.Sprintf("%d %s", body.Error.StatusCode, body.Error.Message)
		}
		err := fmt.Errorf("API error: %s", msg)
		// 2xx error codes reject the base or quote currency.
		if body.Error != nil && body.Error.StatusCode >= 200 && body.Error.StatusCode < 300 {
			return models.PriceQuote{}, apperrors.Unsupported(p.Name(), err)
		}
		return models.PriceQuote{}, apperrors.Unavailable(p.Name(), err)
	}

	perOunce, err := p.pricePerOunce(body, currency, symbol)
	if err != nil {
		return models.PriceQuote{}, apperrors.Malformed(p.Name(), err)
	}

	return models.PriceQuote{
		Commodity:    commodity,
		PricePerUnit: perOunce.DivRound(models.GramsPerTroyOunce, 8),
		Currency:     currency,
		Timestamp:    p.now().UTC(),
		Source:       p.Name(),
		Direct:       true,
	}, nil
}

func (p *MetalPriceAPIProvider) pricePerOunce(body metalPriceAPIResponse, currency, symbol string) (decimal.Decimal, error) {
	if n, ok := body.Rates[currency+symbol]; ok {
		v, err := decimal.NewFromString(n.String())
		if err == nil && v.IsPositive() {
			return v, nil
		}
	}
	n, ok := body.Rates[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("response missing rate for %s", symbol)
	}
	rate, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate for %s: %w", symbol, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate for %s is not positive", symbol)
	}
	return decimal.NewFromInt(1).DivRound(rate, 16), nil
}
