package zakat

import (
	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// RetirementCalculator counts pre-tax accounts at their estimated net
// withdrawal value; Roth accounts and pensions are treated as inaccessible.
type RetirementCalculator struct{}

func (RetirementCalculator) Category() models.Category { return models.CategoryRetirement }

// NetWithdrawal is gross × (1 − taxRate − penaltyRate), floored at zero.
func NetWithdrawal(gross decimal.Decimal, v models.RetirementHoldings) decimal.Decimal {
	tax := models.DefaultRetirementTaxRate
	if v.TaxRate != nil {
		tax = *v.TaxRate
	}
	penalty := models.DefaultRetirementPenaltyRate
	if v.PenaltyRate != nil {
		penalty = *v.PenaltyRate
	}
	keep := decimal.NewFromInt(1).Sub(tax).Sub(penalty)
	if keep.IsNegative() {
		return decimal.Zero
	}
	return gross.Mul(keep)
}

func (RetirementCalculator) CalculateTotal(v models.RetirementHoldings, _ models.MarketPrices) decimal.Decimal {
	return decimal.Sum(v.Traditional401k, v.TraditionalIRA, v.Roth401k, v.RothIRA, v.Pensions, v.OtherRetirement)
}

func (r RetirementCalculator) CalculateZakatable(v models.RetirementHoldings, p models.MarketPrices, hawlMet bool) decimal.Decimal {
	return r.Breakdown(v, p, hawlMet, "").Zakatable
}

func (RetirementCalculator) Breakdown(v models.RetirementHoldings, _ models.MarketPrices, hawlMet bool, _ string) models.AssetBreakdown {
	b := newItems()
	b.partial("traditional_401k", "Traditional 401(k)", v.Traditional401k, NetWithdrawal(v.Traditional401k, v), hawlMet)
	b.partial("traditional_ira", "Traditional IRA", v.TraditionalIRA, NetWithdrawal(v.TraditionalIRA, v), hawlMet)
	b.exempt("roth_401k", "Roth 401(k)", v.Roth401k)
	b.exempt("roth_ira", "Roth IRA", v.RothIRA)
	b.exempt("pensions", "Pensions / Locked Funds", v.Pensions)
	b.zakatable("other_retirement", "Withdrawn Retirement Funds", v.OtherRetirement, hawlMet)
	return b.build()
}
