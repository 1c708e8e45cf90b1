package zakat

import (
	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// RealEstateCalculator: the primary residence is always exempt, rentals are
// zakatable on net income only, property for sale while actively listed, and
// vacant land in the period it is sold.
type RealEstateCalculator struct{}

func (RealEstateCalculator) Category() models.Category { return models.CategoryRealEstate }

func netRentalIncome(v models.RealEstateHoldings) decimal.Decimal {
	return decimal.Max(decimal.Zero, v.RentalIncome.Sub(v.RentalExpenses))
}

func (RealEstateCalculator) CalculateTotal(v models.RealEstateHoldings, _ models.MarketPrices) decimal.Decimal {
	return decimal.Sum(v.PrimaryResidenceValue, netRentalIncome(v), v.PropertyForSaleValue, v.VacantLandValue)
}

func (r RealEstateCalculator) CalculateZakatable(v models.RealEstateHoldings, p models.MarketPrices, hawlMet bool) decimal.Decimal {
	return r.Breakdown(v, p, hawlMet, "").Zakatable
}

func (RealEstateCalculator) Breakdown(v models.RealEstateHoldings, _ models.MarketPrices, hawlMet bool, _ string) models.AssetBreakdown {
	b := newItems()
	b.exempt("primary_residence", "Primary Residence", v.PrimaryResidenceValue)
	b.zakatable("rental_income", "Rental Income (net)", netRentalIncome(v), hawlMet)
	b.zakatable("property_for_sale", "Property for Sale", v.PropertyForSaleValue, hawlMet && v.ActivelySelling)
	b.zakatable("vacant_land", "Vacant Land", v.VacantLandValue, hawlMet && v.VacantLandSold)
	return b.build()
}
