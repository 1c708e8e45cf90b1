package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/zakat/internal/config"
	apperrors "github.com/tropicaldog17/zakat/internal/errors"
	"github.com/tropicaldog17/zakat/internal/models"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// GenericPriceProvider fetches metal prices from a JSON endpoint described in
// configuration, reading the price at a dotted response path.
type GenericPriceProvider struct {
	cfg        config.GenericProvider
	unit       models.WeightUnit
	httpClient *http.Client
	now        func() time.Time
}

func NewGenericPriceProvider(cfg config.GenericProvider, timeout time.Duration) (*GenericPriceProvider, error) {
	unit, err := models.ParseWeightUnit(cfg.Unit)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", cfg.Name, err)
	}
	return &GenericPriceProvider{
		cfg:        cfg,
		unit:       unit,
		httpClient: newHTTPClient(timeout),
		now:        time.Now,
	}, nil
}

func (p *GenericPriceProvider) Name() string { return p.cfg.Name }
func (p *GenericPriceProvider) Paid() bool   { return p.cfg.Paid }

// Configured reports whether every ${VAR} in the endpoint and headers is set.
func (p *GenericPriceProvider) Configured() bool {
	if strings.Contains(expandEnvVars(p.cfg.Endpoint), "${") {
		return false
	}
	for _, v := range p.cfg.Headers {
		if strings.Contains(expandEnvVars(v), "${") {
			return false
		}
	}
	return true
}

func (p *GenericPriceProvider) FetchMetalPrice(ctx context.Context, commodity models.Commodity, currency string) (models.PriceQuote, error) {
	currency = models.NormalizeCurrency(currency)
	replacements := p.replacements(commodity, currency)

	url := expandEnvVars(replace(p.cfg.Endpoint, replacements))
	headers := make(map[string]string, len(p.cfg.Headers))
	for k, v := range p.cfg.Headers {
		headers[k] = expandEnvVars(replace(v, replacements))
	}

	var data any
	if err := getJSON(ctx, p.httpClient, p.Name(), url, headers, &data); err != nil {
		return models.PriceQuote{}, err
	}

	path := p.cfg.ResponsePath
	if path == "" {
		path = "price"
	}
	price, err := extractPrice(data, replace(path, replacements))
	if err != nil {
		return models.PriceQuote{}, apperrors.Malformed(p.Name(), fmt.Errorf("failed to extract price: %w", err))
	}

	return models.PriceQuote{
		Commodity:    commodity,
		PricePerUnit: price.DivRound(p.unit.GramsPer(), 8),
		Currency:     currency,
		Timestamp:    p.now().UTC(),
		Source:       p.Name(),
		Direct:       true,
	}, nil
}

func (p *GenericPriceProvider) replacements(commodity models.Commodity, currency string) map[string]string {
	symbol := commodity.Symbol()
	if s, ok := p.cfg.Symbols[string(commodity)]; ok && s != "" {
		symbol = s
	}
	return map[string]string{
		"{metal}":          string(commodity),
		"{symbol}":         symbol,
		"{currency}":       currency,
		"{currency_lower}": strings.ToLower(currency),
		"{currency_upper}": strings.ToUpper(currency),
	}
}

func replace(s string, replacements map[string]string) string {
	for placeholder, value := range replacements {
		s = strings.ReplaceAll(s, placeholder, value)
	}
	return s
}

// expandEnvVars expands ${VAR_NAME} patterns; unknown variables are left as is.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if value := os.Getenv(match[2 : len(match)-1]); value != "" {
			return value
		}
		return match
	})
}

// extractPrice walks a dotted path through decoded JSON objects.
func extractPrice(data any, path string) (decimal.Decimal, error) {
	current := data
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return decimal.Zero, fmt.Errorf("cannot navigate path '%s' in non-object type", part)
		}
		current, ok = obj[part]
		if !ok {
			return decimal.Zero, fmt.Errorf("path element '%s' not found in response", part)
		}
	}
	return toDecimal(current)
}
