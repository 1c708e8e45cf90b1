package models

import "github.com/shopspring/decimal"

// Holding values are owned by the caller. Calculators receive them by value
// and never write to them.

// CashHoldings are liquid balances in the calculation currency.
type CashHoldings struct {
	CashOnHand     decimal.Decimal `json:"cash_on_hand" validate:"gte=0"`
	Checking       decimal.Decimal `json:"checking_accounts" validate:"gte=0"`
	Savings        decimal.Decimal `json:"savings_accounts" validate:"gte=0"`
	DigitalWallets decimal.Decimal `json:"digital_wallets" validate:"gte=0"`
	// ForeignCurrency is the already-converted total of ForeignCurrencyEntries.
	ForeignCurrency        decimal.Decimal `json:"foreign_currency" validate:"gte=0"`
	ForeignCurrencyEntries []ForeignAmount `json:"foreign_currency_entries,omitempty" validate:"dive"`
}

// ForeignAmount is a balance held in a currency other than the calculation currency.
type ForeignAmount struct {
	Amount   decimal.Decimal `json:"amount" validate:"gte=0"`
	Currency string          `json:"currency" validate:"required,iso4217"`
}

// MetalHoldings are weights split by metal and usage class. Weights are in
// Unit, grams when empty.
type MetalHoldings struct {
	Unit             WeightUnit      `json:"unit,omitempty" validate:"omitempty,oneof=gram troy_ounce tola"`
	GoldRegular      decimal.Decimal `json:"gold_regular" validate:"gte=0"`
	GoldOccasional   decimal.Decimal `json:"gold_occasional" validate:"gte=0"`
	GoldInvestment   decimal.Decimal `json:"gold_investment" validate:"gte=0"`
	SilverRegular    decimal.Decimal `json:"silver_regular" validate:"gte=0"`
	SilverOccasional decimal.Decimal `json:"silver_occasional" validate:"gte=0"`
	SilverInvestment decimal.Decimal `json:"silver_investment" validate:"gte=0"`
}

type StockHoldings struct {
	ActiveStocks       []ActiveStock       `json:"active_stocks,omitempty" validate:"dive"`
	PassiveInvestments []PassiveInvestment `json:"passive_investments,omitempty" validate:"dive"`
	DividendEarnings   decimal.Decimal     `json:"dividend_earnings" validate:"gte=0"`
	Funds              []FundHolding       `json:"funds,omitempty" validate:"dive"`
}

// ActiveStock is a trading position valued at market.
type ActiveStock struct {
	Symbol       string          `json:"symbol"`
	Shares       decimal.Decimal `json:"shares" validate:"gte=0"`
	CurrentPrice decimal.Decimal `json:"current_price" validate:"gte=0"`
	MarketValue  decimal.Decimal `json:"market_value" validate:"gte=0"`
}

// Value is MarketValue when given, otherwise Shares × CurrentPrice.
func (s ActiveStock) Value() decimal.Decimal {
	if !s.MarketValue.IsZero() {
		return s.MarketValue
	}
	return s.Shares.Mul(s.CurrentPrice)
}

// PassiveMethod selects how the zakatable share of a passive holding is estimated.
type PassiveMethod string

const (
	// PassiveQuick applies the flat 30% rule to market value.
	PassiveQuick PassiveMethod = "quick"
	// PassiveDetailed uses the company's liquid assets per share (CRI method).
	PassiveDetailed PassiveMethod = "detailed"
)

type PassiveInvestment struct {
	Name        string             `json:"name"`
	Shares      decimal.Decimal    `json:"shares" validate:"gte=0"`
	MarketValue decimal.Decimal    `json:"market_value" validate:"gte=0"`
	Method      PassiveMethod      `json:"method,omitempty" validate:"omitempty,oneof=quick detailed"`
	Company     *CompanyFinancials `json:"company,omitempty"`
}

// CompanyFinancials are balance-sheet figures from the issuer's latest report.
type CompanyFinancials struct {
	Cash        decimal.Decimal `json:"cash" validate:"gte=0"`
	Receivables decimal.Decimal `json:"receivables" validate:"gte=0"`
	Inventory   decimal.Decimal `json:"inventory" validate:"gte=0"`
	TotalShares decimal.Decimal `json:"total_shares" validate:"gte=0"`
}

type FundHolding struct {
	Name        string          `json:"name"`
	MarketValue decimal.Decimal `json:"market_value" validate:"gte=0"`
	IsPassive   bool            `json:"is_passive"`
}

type RealEstateHoldings struct {
	PrimaryResidenceValue decimal.Decimal `json:"primary_residence_value" validate:"gte=0"`
	RentalIncome          decimal.Decimal `json:"rental_income" validate:"gte=0"`
	RentalExpenses        decimal.Decimal `json:"rental_expenses" validate:"gte=0"`
	PropertyForSaleValue  decimal.Decimal `json:"property_for_sale_value" validate:"gte=0"`
	ActivelySelling       bool            `json:"actively_selling"`
	VacantLandValue       decimal.Decimal `json:"vacant_land_value" validate:"gte=0"`
	VacantLandSold        bool            `json:"vacant_land_sold"`
}

type RetirementHoldings struct {
	Traditional401k decimal.Decimal `json:"traditional_401k" validate:"gte=0"`
	TraditionalIRA  decimal.Decimal `json:"traditional_ira" validate:"gte=0"`
	Roth401k        decimal.Decimal `json:"roth_401k" validate:"gte=0"`
	RothIRA         decimal.Decimal `json:"roth_ira" validate:"gte=0"`
	Pensions        decimal.Decimal `json:"pensions" validate:"gte=0"`
	// OtherRetirement is money already withdrawn from retirement accounts.
	OtherRetirement decimal.Decimal `json:"other_retirement" validate:"gte=0"`
	// Nil rates fall back to DefaultRetirementTaxRate / DefaultRetirementPenaltyRate.
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	PenaltyRate *decimal.Decimal `json:"penalty_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
}

var (
	DefaultRetirementTaxRate     = decimal.NewFromFloat(0.20)
	DefaultRetirementPenaltyRate = decimal.NewFromFloat(0.10)
)

type CryptoHoldings struct {
	Coins []CryptoLot `json:"coins,omitempty" validate:"dive"`
}

// CryptoLot is one purchase lot. MarketValue, when zero, is derived from
// Quantity and the resolved spot price for Symbol.
type CryptoLot struct {
	Symbol      string          `json:"symbol" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gte=0"`
	MarketValue decimal.Decimal `json:"market_value" validate:"gte=0"`
}

type DebtHoldings struct {
	// Receivables is money owed to the holder.
	Receivables decimal.Decimal `json:"receivables" validate:"gte=0"`
	// ShortTermLiabilities are due within twelve months.
	ShortTermLiabilities decimal.Decimal `json:"short_term_liabilities" validate:"gte=0"`
	// LongTermLiabilitiesAnnual is this period's installment of long-term debt.
	LongTermLiabilitiesAnnual decimal.Decimal `json:"long_term_liabilities_annual" validate:"gte=0"`
}
