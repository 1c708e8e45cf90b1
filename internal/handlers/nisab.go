package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/zakat/internal/models"
	"github.com/tropicaldog17/zakat/internal/services"
	"github.com/tropicaldog17/zakat/internal/zakat"
)

type NisabHandler struct {
	nisab  services.NisabResolver
	policy zakat.ThresholdPolicy
}

func NewNisabHandler(nisab services.NisabResolver, policy zakat.ThresholdPolicy) *NisabHandler {
	if policy == nil {
		policy = zakat.LowerOfGoldSilver{}
	}
	return &NisabHandler{nisab: nisab, policy: policy}
}

type NisabResponse struct {
	models.NisabThresholds
	// Threshold is the one the configured policy compares wealth against.
	Threshold   decimal.Decimal   `json:"threshold"`
	Policy      string            `json:"policy"`
	GoldPrice   models.PriceQuote `json:"gold_price"`
	SilverPrice models.PriceQuote `json:"silver_price"`
}

// HandleNisab handles GET /api/nisab?currency=EUR
// @Summary Get nisab thresholds
// @Description Gold (85 g) and silver (595 g) nisab in a currency, with the prices used
// @Tags nisab
// @Produce json
// @Param currency query string false "Currency (default USD)"
// @Success 200 {object} NisabResponse
// @Failure 400 {string} string "Bad request"
// @Router /nisab [get]
func (h *NisabHandler) HandleNisab(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	currency, ok := currencyParam(w, r, "currency")
	if !ok {
		return
	}
	res := h.nisab.ComputeThresholds(r.Context(), currency)
	json.NewEncoder(w).Encode(NisabResponse{
		NisabThresholds: res.Thresholds,
		Threshold:       h.policy.Threshold(res.Thresholds),
		Policy:          h.policy.Name(),
		GoldPrice:       res.Gold,
		SilverPrice:     res.Silver,
	})
}
