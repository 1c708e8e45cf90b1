package services

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// StaticRates is the last-resort exchange table in units per USD. It is only
// consulted after every provider and cache tier has failed.
type StaticRates map[string]decimal.Decimal

// DefaultStaticRates returns a copy of the built-in table.
func DefaultStaticRates() StaticRates {
	table := map[string]string{
		"USD": "1",
		"EUR": "0.92",
		"GBP": "0.79",
		"CHF": "0.88",
		"JPY": "150",
		"CNY": "7.2",
		"CAD": "1.36",
		"AUD": "1.52",
		"NZD": "1.65",
		"SGD": "1.35",
		"HKD": "7.8",
		"SEK": "10.5",
		"NOK": "10.7",
		"DKK": "6.9",
		"INR": "83.5",
		"PKR": "278",
		"BDT": "110",
		"LKR": "300",
		"IDR": "15800",
		"MYR": "4.7",
		"VND": "24000",
		"AED": "3.6725",
		"SAR": "3.75",
		"QAR": "3.64",
		"KWD": "0.307",
		"BHD": "0.376",
		"OMR": "0.385",
		"JOD": "0.709",
		"EGP": "48",
		"MAD": "10",
		"TRY": "32",
		"ZAR": "18.5",
		"NGN": "1500",
		"KES": "130",
	}
	rates := make(StaticRates, len(table))
	for c, v := range table {
		rates[c] = decimal.RequireFromString(v)
	}
	return rates
}

// Rate returns units of `to` per unit of `from`.
func (s StaticRates) Rate(from, to string) (decimal.Decimal, bool) {
	from, to = models.NormalizeCurrency(from), models.NormalizeCurrency(to)
	if from == to {
		return decimal.NewFromInt(1), true
	}
	f, okFrom := s[from]
	t, okTo := s[to]
	if !okFrom || !okTo || !f.IsPositive() || !t.IsPositive() {
		return decimal.Zero, false
	}
	return t.DivRound(f, 16), true
}

// PerUSD returns units of currency per USD.
func (s StaticRates) PerUSD(currency string) (decimal.Decimal, bool) {
	v, ok := s[models.NormalizeCurrency(currency)]
	return v, ok && v.IsPositive()
}

// Currencies lists the table's currencies in order.
func (s StaticRates) Currencies() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
