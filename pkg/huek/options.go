package huek

import (
	"fmt"

	"go.uber.org/zap"
)

// DegeneratePolicy decides what happens to catchments that do not overlap
// the base map.
type DegeneratePolicy string

const (
	// DegenerateFail aborts the run (default).
	DegenerateFail DegeneratePolicy = "fail"
	// DegenerateExclude omits the catchment from the table and records its
	// ID in Table.Excluded.
	DegenerateExclude DegeneratePolicy = "exclude"
)

// ParseDegeneratePolicy parses a policy name.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch DegeneratePolicy(s) {
	case DegenerateFail, "":
		return DegenerateFail, nil
	case DegenerateExclude:
		return DegenerateExclude, nil
	default:
		return "", fmt.Errorf("unknown degenerate catchment policy %q (want %q or %q)", s, DegenerateFail, DegenerateExclude)
	}
}

// AggregateOptions configures the catchment aggregator.
type AggregateOptions struct {
	// Tolerance is the allowed deviation of each attribute's sum from 100.
	Tolerance float64

	// Degenerate selects the handling of catchments outside the base map.
	Degenerate DegeneratePolicy

	// IndexName is the header of the catchment identifier column.
	IndexName string

	// Decimals is the number of decimals every value is rounded to.
	// Zero or less selects 2.
	Decimals int

	// Logger receives per-catchment debug output. Nil disables logging.
	Logger *zap.Logger

	// Progress is an optional callback called after each catchment.
	Progress func(done, total int)
}

// DefaultAggregateOptions returns aggregator options with defaults.
func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{
		Tolerance:  DefaultTolerance,
		Degenerate: DegenerateFail,
		IndexName:  "gauge_id",
		Decimals:   2,
	}
}
