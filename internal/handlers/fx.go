package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/zakat/internal/services"
)

type FXHandler struct {
	prices    services.PriceResolver
	converter services.CurrencyConverter
}

func NewFXHandler(prices services.PriceResolver, converter services.CurrencyConverter) *FXHandler {
	return &FXHandler{prices: prices, converter: converter}
}

// HandleRate handles GET /api/fx/rate?from=EUR&to=USD
// @Summary Get an exchange rate
// @Description Resolve one unit of from in to. A degraded rate of 1 is returned when nothing is known about the pair.
// @Tags fx
// @Produce json
// @Param from query string false "Base currency (default USD)"
// @Param to query string false "Quote currency (default USD)"
// @Success 200 {object} models.RateQuote
// @Failure 400 {string} string "Bad request"
// @Router /fx/rate [get]
func (h *FXHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, ok := currencyParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := currencyParam(w, r, "to")
	if !ok {
		return
	}
	rate := h.prices.ResolveExchangeRate(r.Context(), from, to)
	json.NewEncoder(w).Encode(rate)
}

// HandleConvert handles GET /api/fx/convert?amount=100&from=EUR&to=USD
// @Summary Convert an amount
// @Description Convert between currencies. Unconvertible amounts come back unchanged with degraded=true.
// @Tags fx
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string false "Source currency (default USD)"
// @Param to query string false "Target currency (default USD)"
// @Success 200 {object} services.Conversion
// @Failure 400 {string} string "Bad request"
// @Router /fx/convert [get]
func (h *FXHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	amountStr := r.URL.Query().Get("amount")
	if amountStr == "" {
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		http.Error(w, "Invalid amount: "+err.Error(), http.StatusBadRequest)
		return
	}

	from, ok := currencyParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := currencyParam(w, r, "to")
	if !ok {
		return
	}
	conv := h.converter.Convert(r.Context(), amount, from, to)
	json.NewEncoder(w).Encode(conv)
}
