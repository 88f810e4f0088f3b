// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// RoundWhole rounds a value to the nearest whole currency unit with halves
// rounded towards positive infinity, i.e. JavaScript Math.round semantics.
// The addition is done in decimal so values such as 0.49999999999999994 do
// not round up. NaN and infinities are returned unchanged.
func RoundWhole(val float64) float64 {
	if !IsFinite(val) {
		return val
	}
	rounded, _ := decimal.NewFromFloat(val).Add(half).Floor().Float64()
	if rounded == 0 {
		// avoid -0 in output
		return 0
	}
	return rounded
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentToFactor converts a percentage rate into a growth factor, e.g. 2.5 -> 1.025.
func PercentToFactor(percentage float64) float64 {
	return 1 + percentage/constants.PercentageMultiplier
}

// Annual converts a monthly amount to a yearly amount.
func Annual(monthly float64) float64 {
	return monthly * constants.MonthsPerYear
}
