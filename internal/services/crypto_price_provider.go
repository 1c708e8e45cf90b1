package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/zakat/internal/errors"
	"github.com/tropicaldog17/zakat/internal/models"
)

// CoinGeckoPriceProvider uses the keyless simple/price endpoint for coins and
// for gold and silver backed tokens, which track one troy ounce each.
type CoinGeckoPriceProvider struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewCoinGeckoPriceProvider(timeout time.Duration) *CoinGeckoPriceProvider {
	return &CoinGeckoPriceProvider{
		baseURL:    "https://api.coingecko.com/api/v3",
		httpClient: newHTTPClient(timeout),
		now:        time.Now,
	}
}

func (p *CoinGeckoPriceProvider) Name() string { return "coingecko" }
func (p *CoinGeckoPriceProvider) Paid() bool   { return false }

func metalTokenID(c models.Commodity) string {
	switch c {
	case models.CommodityGold:
		return "pax-gold"
	case models.CommoditySilver:
		return "kinesis-silver"
	default:
		return ""
	}
}

func (p *CoinGeckoPriceProvider) FetchMetalPrice(ctx context.Context, commodity models.Commodity, currency string) (models.PriceQuote, error) {
	currency = models.NormalizeCurrency(currency)
	id := metalTokenID(commodity)
	if id == "" {
		return models.PriceQuote{}, apperrors.Unsupported(p.Name(), fmt.Errorf("unsupported commodity: %s", commodity))
	}
	prices, err := p.simplePrice(ctx, []string{id}, currency)
	if err != nil {
		return models.PriceQuote{}, err
	}
	perOunce, ok := prices[id]
	if !ok {
		return models.PriceQuote{}, apperrors.Unsupported(p.Name(), fmt.Errorf("%s not found in response", id))
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

// FetchCryptoPrices prices every symbol it knows an id for; unknown symbols
// are left out of the result.
func (p *CoinGeckoPriceProvider) FetchCryptoPrices(ctx context.Context, symbols []string, currency string) (map[string]decimal.Decimal, error) {
	idToSymbol := make(map[string]string, len(symbols))
	ids := make([]string, 0, len(symbols))
	for _, s := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(s))
		id := mapSymbolToCoinGeckoID(sym)
		if id == "" {
			continue
		}
		if _, dup := idToSymbol[id]; !dup {
			ids = append(ids, id)
		}
		idToSymbol[id] = sym
	}
	if len(ids) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	byID, err := p.simplePrice(ctx, ids, currency)
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(byID))
	for id, price := range byID {
		if sym, ok := idToSymbol[id]; ok {
			out[sym] = price
		}
	}
	return out, nil
}

func (p *CoinGeckoPriceProvider) simplePrice(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error) {
	vs := strings.ToLower(currency)
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", vs)

	var payload map[string]map[string]any
	if err := getJSON(ctx, p.httpClient, p.Name(), p.baseURL+"/simple/price?"+q.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal, len(payload))
	for id, byCurrency := range payload {
		v, ok := byCurrency[vs]
		if !ok {
			continue
		}
		d, err := toDecimal(v)
		if err != nil {
			return nil, apperrors.Malformed(p.Name(), fmt.Errorf("price for %s: %w", id, err))
		}
		out[id] = d
	}
	if len(out) == 0 {
		return nil, apperrors.Unsupported(p.Name(), fmt.Errorf("no %s prices in response", vs))
	}
	return out, nil
}

func mapSymbolToCoinGeckoID(symbol string) string {
	switch strings.ToUpper(symbol) {
	// Major Cryptocurrencies
	case "BTC":
		return "bitcoin"
	case "ETH":
		return "ethereum"

	// Stablecoins
	case "USDT":
		return "tether"
	case "USDC":
		return "usd-coin"
	case "DAI":
		return "dai"

	// Commodity-backed Tokens
	case "PAXG":
		return "pax-gold"
	case "XAUT":
		return "tether-gold"
	case "KAG":
		return "kinesis-silver"

	// Layer 1 Blockchains
	case "SOL":
		return "solana"
	case "ADA":
		return "cardano"
	case "AVAX":
		return "avalanche-2"
	case "DOT":
		return "polkadot"
	case "ATOM":
		return "cosmos"
	case "NEAR":
		return "near"
	case "ALGO":
		return "algorand"
	case "TRX":
		return "tron"
	case "TON":
		return "the-open-network"

	// DeFi & Exchange Tokens
	case "BNB":
		return "binancecoin"
	case "UNI":
		return "uniswap"
	case "LINK":
		return "chainlink"
	case "AAVE":
		return "aave"

	// Other Popular Tokens
	case "XRP":
		return "ripple"
	case "LTC":
		return "litecoin"
	case "DOGE":
		return "dogecoin"
	case "SHIB":
		return "shiba-inu"
	case "XLM":
		return "stellar"
	case "BCH":
		return "bitcoin-cash"
	case "ARB":
		return "arbitrum"
	case "OP":
		return "optimism"

	default:
		return ""
	}
}
