// Package valuation prices individual holdings: unit normalization, the bond
// present-value model, and the per-asset pricing strategies.
package valuation

import "github.com/fincatch/fincatch/internal/models"

// Gold weight in grams per unit. Tael (37.5 g) is the base unit for all gold
// valuation math.
const (
	GramsPerTael  = 37.5
	GramsPerMace  = 3.75
	GramsPerOunce = 31.1035 // troy ounce
	GramsPerKg    = 1000.0
)

// unitGrams returns the gram weight of one gold unit.
func unitGrams(u models.GoldUnit) float64 {
	switch u {
	case models.GoldUnitGram:
		return 1
	case models.GoldUnitMace:
		return GramsPerMace
	case models.GoldUnitOunce:
		return GramsPerOunce
	case models.GoldUnitKg:
		return GramsPerKg
	default: // tael, or unset
		return GramsPerTael
	}
}

// NormalizeQuantity converts a holding quantity into its base unit: tael for
// gold, identity for stock shares and bond counts.
func NormalizeQuantity(quantity float64, unit models.GoldUnit, assetType models.AssetType) float64 {
	if assetType != models.AssetTypeGold {
		return quantity
	}
	return quantity * unitGrams(unit) / GramsPerTael
}

// NormalizePurchasePrice converts a per-unit purchase price to per-base-unit.
// The scaling is the inverse of the quantity scaling so price×quantity is
// unchanged: a per-mace price becomes per-tael by multiplying by 10.
func NormalizePurchasePrice(price float64, unit models.GoldUnit, assetType models.AssetType) float64 {
	if assetType != models.AssetTypeGold {
		return price
	}
	return price * GramsPerTael / unitGrams(unit)
}
