package huek

import (
	"gonum.org/v1/gonum/floats"
)

// CategoryRow holds the area percentages of one attribute for one catchment.
type CategoryRow struct {
	CatchmentID string
	Attribute   string

	// Columns and Values hold the attribute-specific categories in
	// vocabulary order.
	Columns []string
	Values  []float64

	// Shared holds the attribute's own percentage for each shared category.
	Shared map[SharedCategory]float64
}

// Sum returns the sum of all percentages of the row, shared ones included.
func (r CategoryRow) Sum() float64 {
	all := make([]float64, 0, len(r.Values)+len(r.Shared))
	all = append(all, r.Values...)
	for _, key := range []SharedCategory{Waterbody, NoData} {
		if v, ok := r.Shared[key]; ok {
			all = append(all, v)
		}
	}
	return floats.Sum(all)
}

// Value returns the percentage of an attribute-specific column.
func (r CategoryRow) Value(column string) (float64, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return 0, false
}

// Extractor computes the area percentages of one attribute field.
//
// One Extractor exists per attribute of the vocabulary; they differ only in
// the field they read and the categories they count.
type Extractor struct {
	attr      Attribute
	shared    SharedCategories
	tolerance float64
}

// NewExtractor creates an extractor for one attribute. tolerance is the
// allowed absolute deviation of the category sum from 100.
func NewExtractor(attr Attribute, shared SharedCategories, tolerance float64) *Extractor {
	return &Extractor{attr: attr, shared: shared, tolerance: tolerance}
}

// Attribute returns the attribute the extractor reads.
func (e *Extractor) Attribute() Attribute {
	return e.attr
}

// Extract clips the base map to the catchment and returns the percentage of
// the clipped area covered by every category of the attribute.
//
// The clip is computed here, independently of any other extractor. A
// catchment without overlap returns *DegenerateCatchmentError; a row whose
// categories do not add up to 100 returns *ConsistencyError.
func (e *Extractor) Extract(base *Layer, c Catchment) (CategoryRow, error) {
	pieces, err := base.Clip(c.Geometry)
	if err != nil {
		return CategoryRow{}, err
	}

	columnOf := make(map[string]int, len(e.attr.Categories))
	for i, cat := range e.attr.Categories {
		columnOf[cat.Label] = i
	}
	sharedOf := make(map[string]SharedCategory, 2)
	for _, key := range e.shared.Keys() {
		sharedOf[e.shared.Get(key).Label] = key
	}

	areas := make([]float64, len(e.attr.Categories))
	sharedAreas := make(map[SharedCategory]float64, 2)
	total := 0.0

	for _, p := range pieces {
		total += p.Area

		label, _ := p.Feature.Attribute(e.attr.Field)
		if i, ok := columnOf[label]; ok {
			areas[i] += p.Area
		} else if key, ok := sharedOf[label]; ok {
			sharedAreas[key] += p.Area
		}
		// unknown labels count towards total only
	}

	if total <= 0 {
		return CategoryRow{}, &DegenerateCatchmentError{CatchmentID: c.ID}
	}

	row := CategoryRow{
		CatchmentID: c.ID,
		Attribute:   e.attr.Name,
		Columns:     e.attr.Columns(),
		Values:      make([]float64, len(areas)),
		Shared:      make(map[SharedCategory]float64, 2),
	}
	for i, a := range areas {
		row.Values[i] = percentage(a, total)
	}
	for _, key := range e.shared.Keys() {
		row.Shared[key] = percentage(sharedAreas[key], total)
	}

	if err := CheckConsistency(row, e.tolerance); err != nil {
		return CategoryRow{}, err
	}
	return row, nil
}

// percentage is written as (part/total)*100 so that equal area sums give
// bit-identical results in every extractor.
func percentage(part, total float64) float64 {
	return (part / total) * 100
}
