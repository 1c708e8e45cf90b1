package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateSnapshot holds the rates for one base currency at a point in time.
// Rates[c] is the amount of c bought by one unit of Base.
type ExchangeRateSnapshot struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Timestamp time.Time                  `json:"timestamp"`
	Source    string                     `json:"source"`
	IsCache   bool                       `json:"is_cache"`
}

// Common currencies
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

// Validate validates the snapshot data
func (s *ExchangeRateSnapshot) Validate() error {
	if s.Base == "" {
		return errors.New("base is required")
	}
	if len(s.Rates) == 0 {
		return errors.New("rates are required")
	}
	if r, ok := s.Rates[s.Base]; ok && !r.Equal(decimal.NewFromInt(1)) {
		return errors.New("rate of base currency must be 1")
	}
	for c, r := range s.Rates {
		if !r.IsPositive() {
			return errors.New("rate for " + c + " must be positive")
		}
	}
	return nil
}

// Rate returns the rate from Base to target.
func (s *ExchangeRateSnapshot) Rate(target string) (decimal.Decimal, bool) {
	if target == s.Base {
		return decimal.NewFromInt(1), true
	}
	r, ok := s.Rates[target]
	if !ok || !r.IsPositive() {
		return decimal.Zero, false
	}
	return r, true
}

// WithBase returns a copy whose Rates contain Base at exactly 1.
func (s ExchangeRateSnapshot) WithBase() ExchangeRateSnapshot {
	rates := make(map[string]decimal.Decimal, len(s.Rates)+1)
	for c, r := range s.Rates {
		rates[c] = r
	}
	rates[s.Base] = decimal.NewFromInt(1)
	s.Rates = rates
	return s
}

// GetInverseRate calculates the inverse rate (1/rate)
func GetInverseRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).DivRound(rate, 16)
}
