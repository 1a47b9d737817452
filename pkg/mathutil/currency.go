// Package mathutil provides rounding and comparison helpers for currency values.
package mathutil

import (
	"math"

	"github.com/riskgoal/riskgoal/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Applied to echoed inputs at the response boundary only.
func Round(val float64) float64 {
	rounded, _ := decimal.NewFromFloat(val).Round(2).Float64()
	return rounded
}

// RoundWhole rounds a value to the nearest whole currency unit. Applied to
// computed monetary outputs at the response boundary only.
func RoundWhole(val float64) float64 {
	rounded, _ := decimal.NewFromFloat(val).Round(0).Float64()
	return rounded
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
