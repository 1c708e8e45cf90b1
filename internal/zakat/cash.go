package zakat

import (
	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

type CashCalculator struct{}

func (CashCalculator) Category() models.Category { return models.CategoryCash }

func (CashCalculator) CalculateTotal(v models.CashHoldings, _ models.MarketPrices) decimal.Decimal {
	return decimal.Sum(v.CashOnHand, v.Checking, v.Savings, v.DigitalWallets, v.ForeignCurrency)
}

func (c CashCalculator) CalculateZakatable(v models.CashHoldings, p models.MarketPrices, hawlMet bool) decimal.Decimal {
	if !hawlMet {
		return decimal.Zero
	}
	return c.CalculateTotal(v, p)
}

func (CashCalculator) Breakdown(v models.CashHoldings, _ models.MarketPrices, hawlMet bool, _ string) models.AssetBreakdown {
	b := newItems()
	b.zakatable("cash_on_hand", "Cash on Hand", v.CashOnHand, hawlMet)
	b.zakatable("checking_accounts", "Checking Accounts", v.Checking, hawlMet)
	b.zakatable("savings_accounts", "Savings Accounts", v.Savings, hawlMet)
	b.zakatable("digital_wallets", "Digital Wallets", v.DigitalWallets, hawlMet)
	b.zakatable("foreign_currency", "Foreign Currency", v.ForeignCurrency, hawlMet)
	return b.build()
}
