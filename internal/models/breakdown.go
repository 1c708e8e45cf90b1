package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	ZakatRate        = decimal.NewFromFloat(0.025)
	NisabGoldGrams   = decimal.NewFromInt(85)
	NisabSilverGrams = decimal.NewFromInt(595)
)

// Category names an asset class.
type Category string

const (
	CategoryCash       Category = "cash"
	CategoryMetals     Category = "metals"
	CategoryStocks     Category = "stocks"
	CategoryRealEstate Category = "real_estate"
	CategoryRetirement Category = "retirement"
	CategoryCrypto     Category = "crypto"
	CategoryDebt       Category = "debt"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCash, CategoryMetals, CategoryStocks, CategoryRealEstate,
	CategoryRetirement, CategoryCrypto, CategoryDebt,
}

type AssetBreakdownItem struct {
	Value       decimal.Decimal `json:"value"`
	IsZakatable bool            `json:"is_zakatable"`
	Zakatable   decimal.Decimal `json:"zakatable"`
	ZakatDue    decimal.Decimal `json:"zakat_due"`
	Label       string          `json:"label"`
	IsExempt    bool            `json:"is_exempt,omitempty"`
}

type AssetBreakdown struct {
	Total     decimal.Decimal               `json:"total"`
	Zakatable decimal.Decimal               `json:"zakatable"`
	ZakatDue  decimal.Decimal               `json:"zakat_due"`
	Items     map[string]AssetBreakdownItem `json:"items"`
}

type NisabThresholds struct {
	GoldThreshold       decimal.Decimal `json:"gold_threshold"`
	SilverThreshold     decimal.Decimal `json:"silver_threshold"`
	IsDirectGoldPrice   bool            `json:"is_direct_gold_price"`
	IsDirectSilverPrice bool            `json:"is_direct_silver_price"`
	Currency            string          `json:"currency"`
}

type CombinedBreakdown struct {
	TotalValue     decimal.Decimal             `json:"total_value"`
	ZakatableValue decimal.Decimal             `json:"zakatable_value"`
	ZakatDue       decimal.Decimal             `json:"zakat_due"`
	MeetsNisab     bool                        `json:"meets_nisab"`
	PerCategory    map[Category]AssetBreakdown `json:"per_category"`
}

// MarketPrices are the resolved prices a calculation runs against, all in Currency.
type MarketPrices struct {
	Currency      string                     `json:"currency"`
	GoldPerGram   decimal.Decimal            `json:"gold_per_gram"`
	SilverPerGram decimal.Decimal            `json:"silver_per_gram"`
	Crypto        map[string]decimal.Decimal `json:"crypto,omitempty"`
}

// CategoryInput pairs a category's holdings with its own hawl flag.
type CategoryInput[V any] struct {
	HawlMet bool `json:"hawl_met"`
	Values  V    `json:"values"`
}

// ZakatRequest carries every category a user filled in. Absent categories are skipped.
type ZakatRequest struct {
	Currency   string                             `json:"currency" default:"USD" validate:"required,iso4217"`
	Cash       *CategoryInput[CashHoldings]       `json:"cash,omitempty"`
	Metals     *CategoryInput[MetalHoldings]      `json:"metals,omitempty"`
	Stocks     *CategoryInput[StockHoldings]      `json:"stocks,omitempty"`
	RealEstate *CategoryInput[RealEstateHoldings] `json:"real_estate,omitempty"`
	Retirement *CategoryInput[RetirementHoldings] `json:"retirement,omitempty"`
	Crypto     *CategoryInput[CryptoHoldings]     `json:"crypto,omitempty"`
	Debt       *CategoryInput[DebtHoldings]       `json:"debt,omitempty"`
}

// ZakatReport is the result of a full calculation together with the
// provenance of every price it used.
type ZakatReport struct {
	Currency        string                `json:"currency"`
	Combined        CombinedBreakdown     `json:"combined"`
	Nisab           NisabThresholds       `json:"nisab"`
	ThresholdPolicy string                `json:"threshold_policy"`
	WealthBasis     string                `json:"wealth_basis"`
	GoldPrice       PriceQuote            `json:"gold_price"`
	SilverPrice     PriceQuote            `json:"silver_price"`
	CryptoPrices    map[string]PriceQuote `json:"crypto_prices,omitempty"`
	Warnings        []string              `json:"warnings,omitempty"`
	CalculatedAt    time.Time             `json:"calculated_at"`
}
