package vector

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ValidateCoordinate validates a single geographic coordinate pair
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// ValidateGeometry checks that g is a non-empty polygonal geometry with
// closed rings of at least four finite vertices. Geographic layers also get
// their coordinate bounds checked.
func ValidateGeometry(g orb.Geometry, geographic bool) error {
	if g == nil {
		return &ErrInvalidGeometry{Reason: "geometry is nil"}
	}

	polys := polygons(g)
	if polys == nil {
		return &ErrInvalidGeometry{Type: g.GeoJSONType(), Reason: "only Polygon and MultiPolygon are supported"}
	}
	if len(polys) == 0 {
		return &ErrInvalidGeometry{Type: g.GeoJSONType(), Reason: "geometry is empty"}
	}

	for p, poly := range polys {
		if len(poly) == 0 {
			return &ErrInvalidGeometry{Type: g.GeoJSONType(), Reason: fmt.Sprintf("polygon %d has no rings", p)}
		}
		for r, ring := range poly {
			if len(ring) < 4 {
				return &ErrInvalidGeometry{
					Type:   g.GeoJSONType(),
					Reason: fmt.Sprintf("polygon %d ring %d has %d vertices, need at least 4", p, r, len(ring)),
				}
			}
			if !ring.Closed() {
				return &ErrInvalidGeometry{
					Type:   g.GeoJSONType(),
					Reason: fmt.Sprintf("polygon %d ring %d is not closed", p, r),
				}
			}
			for i, pt := range ring {
				if math.IsNaN(pt[0]) || math.IsNaN(pt[1]) || math.IsInf(pt[0], 0) || math.IsInf(pt[1], 0) {
					return &ErrInvalidGeometry{
						Type:   g.GeoJSONType(),
						Reason: fmt.Sprintf("polygon %d ring %d vertex %d is not finite", p, r, i),
					}
				}
				if geographic {
					if err := ValidateCoordinate(pt[1], pt[0]); err != nil {
						return &ErrInvalidGeometry{
							Type:   g.GeoJSONType(),
							Reason: fmt.Sprintf("polygon %d ring %d vertex %d invalid: %v", p, r, i, err),
						}
					}
				}
			}
		}
	}

	return nil
}

// ValidateFeature validates a feature's geometry and records the feature ID on failure
func ValidateFeature(feature *Feature, geographic bool) error {
	if feature == nil {
		return fmt.Errorf("feature is nil")
	}

	if err := ValidateGeometry(feature.Geometry, geographic); err != nil {
		if ge, ok := err.(*ErrInvalidGeometry); ok {
			ge.FeatureID = feature.ID
			return ge
		}
		return fmt.Errorf("feature %d: %w", feature.ID, err)
	}

	return nil
}
