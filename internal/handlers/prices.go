package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tropicaldog17/zakat/internal/models"
	"github.com/tropicaldog17/zakat/internal/services"
)

type PriceHandler struct {
	prices services.PriceResolver
}

func NewPriceHandler(prices services.PriceResolver) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// MetalPricesResponse is the per-gram spot price of both metals.
type MetalPricesResponse struct {
	Gold        float64   `json:"gold"`
	Silver      float64   `json:"silver"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"lastUpdated"`
	IsCache     bool      `json:"isCache"`
	Source      string    `json:"source"`
}

// HandleMetalPrices handles GET /api/prices/metals?currency=EUR
// @Summary Get gold and silver prices
// @Description Per-gram spot prices. Any ISO 4217 currency answers 200; isCache and source show when cached or fallback data was used.
// @Tags prices
// @Produce json
// @Param currency query string false "Currency (default USD)"
// @Success 200 {object} MetalPricesResponse
// @Failure 400 {string} string "Bad request"
// @Router /prices/metals [get]
func (h *PriceHandler) HandleMetalPrices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	currency, ok := currencyParam(w, r, "currency")
	if !ok {
		return
	}
	gold := h.prices.ResolveCommodityPrice(r.Context(), models.CommodityGold, currency)
	silver := h.prices.ResolveCommodityPrice(r.Context(), models.CommoditySilver, currency)

	json.NewEncoder(w).Encode(metalPrices(gold, silver))
}

func metalPrices(gold, silver models.PriceQuote) MetalPricesResponse {
	source := gold.Source
	if silver.Source != gold.Source {
		source = gold.Source + "," + silver.Source
	}
	// Report the older of the two quotes.
	updated := gold.Timestamp
	if silver.Timestamp.Before(updated) {
		updated = silver.Timestamp
	}
	return MetalPricesResponse{
		Gold:        gold.PricePerUnit.InexactFloat64(),
		Silver:      silver.PricePerUnit.InexactFloat64(),
		Currency:    gold.Currency,
		LastUpdated: updated,
		IsCache:     gold.IsCache || silver.IsCache,
		Source:      source,
	}
}

// HandleCryptoPrices handles GET /api/prices/crypto?symbols=BTC,ETH&currency=USD
// @Summary Get crypto spot prices
// @Description Coins no provider or cache could price are left out of the result
// @Tags prices
// @Produce json
// @Param symbols query string true "Comma-separated coin symbols"
// @Param currency query string false "Currency (default USD)"
// @Success 200 {object} map[string]models.PriceQuote
// @Failure 400 {string} string "Bad request"
// @Router /prices/crypto [get]
func (h *PriceHandler) HandleCryptoPrices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var symbols []string
	for _, s := range strings.Split(r.URL.Query().Get("symbols"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		http.Error(w, "symbols is required", http.StatusBadRequest)
		return
	}

	currency, ok := currencyParam(w, r, "currency")
	if !ok {
		return
	}
	prices := h.prices.ResolveCryptoPrices(r.Context(), symbols, currency)
	json.NewEncoder(w).Encode(prices)
}

// currencyParam reads a currency query parameter, defaulting to USD. Codes
// that are not ISO 4217 get a 400 and ok=false.
func currencyParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	c := models.NormalizeCurrency(r.URL.Query().Get(name))
	if c == "" {
		return models.CurrencyUSD, true
	}
	if !models.IsISO4217(c) {
		http.Error(w, "Invalid "+name+": must be an ISO 4217 currency code", http.StatusBadRequest)
		return "", false
	}
	return c, true
}
