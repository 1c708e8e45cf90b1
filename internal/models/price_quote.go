package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Commodity identifies a priced good. Gold and silver are quoted per gram.
type Commodity string

const (
	CommodityGold   Commodity = "gold"
	CommoditySilver Commodity = "silver"
)

// Symbol returns the ISO 4217 metal code used by most spot-price APIs.
func (c Commodity) Symbol() string {
	switch c {
	case CommodityGold:
		return "XAU"
	case CommoditySilver:
		return "XAG"
	default:
		return strings.ToUpper(string(c))
	}
}

// Sources that are not provider ids.
const (
	SourceFallback    = "fallback"
	SourceIdentity    = "identity"
	SourceStatic      = "static"
	SourceUnavailable = "unavailable"
)

// PriceQuote is the price of one unit of a commodity in Currency.
// Quotes are replaced, never mutated, once stored.
type PriceQuote struct {
	Commodity    Commodity       `json:"commodity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Currency     string          `json:"currency"`
	Timestamp    time.Time       `json:"timestamp"`
	IsCache      bool            `json:"is_cache"`
	Source       string          `json:"source"`
	// Direct is true when the provider quoted in Currency itself rather than
	// the price being derived through an exchange rate.
	Direct bool `json:"direct"`
}

func (q *PriceQuote) Validate() error {
	if q.Commodity == "" {
		return errors.New("commodity is required")
	}
	if q.Currency == "" {
		return errors.New("currency is required")
	}
	if !q.PricePerUnit.IsPositive() {
		return errors.New("price must be positive")
	}
	if q.Source == "" {
		return errors.New("source is required")
	}
	return nil
}

// Age returns how old the quote is relative to now.
func (q PriceQuote) Age(now time.Time) time.Duration {
	return now.Sub(q.Timestamp)
}

// RateQuote is a resolved exchange rate: one unit of From buys Rate units of To.
type RateQuote struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Timestamp time.Time       `json:"timestamp"`
	IsCache   bool            `json:"is_cache"`
	Source    string          `json:"source"`
	// Degraded marks a rate that could not be resolved at all; Rate is 1 and
	// amounts pass through unconverted.
	Degraded bool `json:"degraded"`
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}

// IsCurrencyCode reports whether c looks like an ISO 4217 code.
func IsCurrencyCode(c string) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
