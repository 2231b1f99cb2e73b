package huek

import (
	"fmt"
	"sort"
	"strings"
)

// ConsistencyError indicates that the category percentages of one attribute
// do not add up to 100 for a catchment. It points at a clipping bug or at
// labels in the base map that the vocabulary does not know.
type ConsistencyError struct {
	CatchmentID string
	Attribute   string
	Sum         float64
	Tolerance   float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("catchment %s: sum of %s categories is not 100 but %v (tolerance %v)",
		e.CatchmentID, e.Attribute, e.Sum, e.Tolerance)
}

// CollapseMismatchError indicates that the attributes disagree on the
// percentage of a shared category (waterbody or no data) for one catchment.
type CollapseMismatchError struct {
	CatchmentID string
	Category    SharedCategory
	Values      map[string]float64 // attribute name -> percentage
}

func (e *CollapseMismatchError) Error() string {
	names := make([]string, 0, len(e.Values))
	for name := range e.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, e.Values[name])
	}
	return fmt.Sprintf("catchment %s: %s percentages differ between attributes: %s",
		e.CatchmentID, e.Category, strings.Join(parts, ", "))
}

// DegenerateCatchmentError indicates a catchment without any overlap with
// the base map, for which no percentage is defined.
type DegenerateCatchmentError struct {
	CatchmentID string
}

func (e *DegenerateCatchmentError) Error() string {
	return fmt.Sprintf("catchment %s does not overlap the base map (clipped area is zero)", e.CatchmentID)
}

// MissingFieldError indicates a layer without a required attribute field.
type MissingFieldError struct {
	Layer string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("layer %s has no field %q", e.Layer, e.Field)
}

// UnsupportedCRSError indicates a reprojection that cannot be performed.
type UnsupportedCRSError struct {
	From, To CRS
	Reason   string
}

func (e *UnsupportedCRSError) Error() string {
	return fmt.Sprintf("cannot transform %s to %s: %s", e.From, e.To, e.Reason)
}

// UnknownLabelsError lists base-map labels that the vocabulary does not know.
type UnknownLabelsError struct {
	Version string
	Labels  []UnknownLabel
}

func (e *UnknownLabelsError) Error() string {
	parts := make([]string, 0, len(e.Labels))
	for _, l := range e.Labels {
		parts = append(parts, fmt.Sprintf("%s=%q (%d features)", l.Field, l.Label, l.Count))
	}
	return fmt.Sprintf("base map does not match vocabulary %s: %s", e.Version, strings.Join(parts, "; "))
}
