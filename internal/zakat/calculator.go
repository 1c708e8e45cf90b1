// Package zakat holds the category calculators and the aggregation engine.
// Everything here is a pure function of its inputs: no I/O, no clocks, no
// shared state.
package zakat

import (
	"github.com/shopspring/decimal"
	"github.com/tropicaldog17/zakat/internal/models"
)

// Calculator turns one category's holdings into a breakdown.
//
// Prices are passed to every method; categories whose values are already
// monetary ignore them.
type Calculator[V any] interface {
	Category() models.Category
	CalculateTotal(values V, prices models.MarketPrices) decimal.Decimal
	CalculateZakatable(values V, prices models.MarketPrices, hawlMet bool) decimal.Decimal
	Breakdown(values V, prices models.MarketPrices, hawlMet bool, currency string) models.AssetBreakdown
}

// itemBuilder accumulates breakdown items, merging repeated keys.
type itemBuilder struct {
	items map[string]models.AssetBreakdownItem
}

func newItems() *itemBuilder {
	return &itemBuilder{items: make(map[string]models.AssetBreakdownItem)}
}

func (b *itemBuilder) add(key string, item models.AssetBreakdownItem) {
	item.ZakatDue = dueOn(item.Zakatable)
	existing, ok := b.items[key]
	if !ok {
		b.items[key] = item
		return
	}
	existing.Value = existing.Value.Add(item.Value)
	existing.Zakatable = existing.Zakatable.Add(item.Zakatable)
	existing.ZakatDue = dueOn(existing.Zakatable)
	existing.IsZakatable = existing.IsZakatable || item.IsZakatable
	existing.IsExempt = existing.IsExempt && item.IsExempt
	b.items[key] = existing
}

// zakatable adds an item that is fully zakatable once hawl is met.
func (b *itemBuilder) zakatable(key, label string, value decimal.Decimal, hawlMet bool) {
	b.partial(key, label, value, value, hawlMet)
}

// partial adds an item whose zakatable portion differs from its value.
func (b *itemBuilder) partial(key, label string, value, portion decimal.Decimal, hawlMet bool) {
	item := models.AssetBreakdownItem{Value: value, Label: label, Zakatable: decimal.Zero}
	if hawlMet {
		item.IsZakatable = true
		item.Zakatable = portion
	}
	b.add(key, item)
}

func (b *itemBuilder) exempt(key, label string, value decimal.Decimal) {
	b.add(key, models.AssetBreakdownItem{
		Value:     value,
		Label:     label,
		Zakatable: decimal.Zero,
		IsExempt:  true,
	})
}

// build sums the items so that Total and Zakatable always equal the item sums.
func (b *itemBuilder) build() models.AssetBreakdown {
	total := decimal.Zero
	zakatable := decimal.Zero
	for _, it := range b.items {
		total = total.Add(it.Value)
		zakatable = zakatable.Add(it.Zakatable)
	}
	return models.AssetBreakdown{
		Total:     total,
		Zakatable: zakatable,
		ZakatDue:  dueOn(zakatable),
		Items:     b.items,
	}
}

// dueOn is max(0, zakatable) × rate.
func dueOn(zakatable decimal.Decimal) decimal.Decimal {
	if !zakatable.IsPositive() {
		return decimal.Zero
	}
	return zakatable.Mul(models.ZakatRate)
}
