package huek

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the allowed absolute deviation of a category sum from 100.
const DefaultTolerance = 0.1

// CheckConsistency verifies that the percentages of a row sum to 100 within
// tolerance. A NaN sum always fails.
func CheckConsistency(row CategoryRow, tolerance float64) error {
	sum := row.Sum()
	if math.IsNaN(sum) || !floats.EqualWithinAbs(sum, 100, tolerance) {
		return &ConsistencyError{
			CatchmentID: row.CatchmentID,
			Attribute:   row.Attribute,
			Sum:         sum,
			Tolerance:   tolerance,
		}
	}
	return nil
}
