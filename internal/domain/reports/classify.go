package reports

import (
	"storekeeper/internal/core/types"
)

// StockLevel is the health bucket derived from a product's quantity.
type StockLevel string

const (
	LevelOut    StockLevel = "out"
	LevelLow    StockLevel = "low"
	LevelMedium StockLevel = "medium"
	LevelHigh   StockLevel = "high"
)

// Thresholds define the classification boundaries. A quantity of zero is
// always "out"; (0, LowMax] is "low"; (LowMax, MediumMax] is "medium";
// everything above is "high".
type Thresholds struct {
	LowMax    types.Quantity
	MediumMax types.Quantity
}

// DefaultThresholds returns the standard boundaries: low ≤ 10, medium ≤ 30.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowMax:    10,
		MediumMax: 30,
	}
}

// Classify maps a quantity to its stock level.
func (t Thresholds) Classify(quantity types.Quantity) StockLevel {
	switch {
	case quantity <= 0:
		return LevelOut
	case quantity <= t.LowMax:
		return LevelLow
	case quantity <= t.MediumMax:
		return LevelMedium
	default:
		return LevelHigh
	}
}
