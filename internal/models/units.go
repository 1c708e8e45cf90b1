package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// WeightUnit is a unit precious metals may be entered in.
type WeightUnit string

const (
	UnitGram      WeightUnit = "gram"
	UnitTroyOunce WeightUnit = "troy_ounce"
	UnitTola      WeightUnit = "tola"
)

var (
	GramsPerTroyOunce = decimal.RequireFromString("31.1034768")
	GramsPerTola      = decimal.RequireFromString("11.664")
)

// ParseWeightUnit accepts the common spellings of each unit.
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "g", "gram", "grams":
		return UnitGram, nil
	case "oz", "ozt", "troy_ounce", "troy_ounces", "ounce":
		return UnitTroyOunce, nil
	case "tola", "tolas":
		return UnitTola, nil
	default:
		return "", fmt.Errorf("unknown weight unit %q", s)
	}
}

// GramsPer returns the number of grams in one unit.
func (u WeightUnit) GramsPer() decimal.Decimal {
	switch u {
	case UnitTroyOunce:
		return GramsPerTroyOunce
	case UnitTola:
		return GramsPerTola
	default:
		return decimal.NewFromInt(1)
	}
}

// ToGrams converts a weight in u to grams.
func (u WeightUnit) ToGrams(w decimal.Decimal) decimal.Decimal {
	return w.Mul(u.GramsPer())
}
