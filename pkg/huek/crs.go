package huek

import (
	"fmt"

	"github.com/beetlebugorg/huek250/internal/projection"
	"github.com/paulmach/orb"
)

// CRS identifies a coordinate reference system by EPSG code.
//
// Supported systems are the ones the HÜK250 and typical catchment datasets
// are delivered in:
//   - EPSG:4326 (WGS 84) and EPSG:4258 (ETRS89), geographic lon/lat
//   - EPSG:326zz / EPSG:327zz, WGS 84 / UTM north and south
//   - EPSG:258zz (zones 28–38), ETRS89 / UTM north
//
// ETRS89 and WGS 84 are treated as the same datum; the sub-metre difference
// is far below the resolution of a 1:250,000 map.
//
// The zero value is an unknown CRS.
type CRS struct {
	EPSG int
}

// Common reference systems.
var (
	WGS84        = CRS{EPSG: 4326}
	ETRS89       = CRS{EPSG: 4258}
	ETRS89UTM32N = CRS{EPSG: 25832}
)

// String returns the "EPSG:<code>" form, or "unknown".
func (c CRS) String() string {
	if c.EPSG == 0 {
		return "unknown"
	}
	return fmt.Sprintf("EPSG:%d", c.EPSG)
}

// IsKnown reports whether the CRS has an EPSG code.
func (c CRS) IsKnown() bool {
	return c.EPSG != 0
}

// IsGeographic reports whether coordinates are lon/lat degrees.
func (c CRS) IsGeographic() bool {
	return c.EPSG == 4326 || c.EPSG == 4258
}

// Supported reports whether Transform can convert to and from this CRS.
func (c CRS) Supported() bool {
	if c.IsGeographic() {
		return true
	}
	_, ok := c.utmZone()
	return ok
}

// utmZone returns the UTM zone of a projected CRS.
func (c CRS) utmZone() (projection.Zone, bool) {
	switch {
	case c.EPSG >= 32601 && c.EPSG <= 32660:
		return projection.Zone{Number: c.EPSG - 32600, North: true}, true
	case c.EPSG >= 32701 && c.EPSG <= 32760:
		return projection.Zone{Number: c.EPSG - 32700, North: false}, true
	case c.EPSG >= 25828 && c.EPSG <= 25838:
		return projection.Zone{Number: c.EPSG - 25800, North: true}, true
	default:
		return projection.Zone{}, false
	}
}

// PointTransform converts a single point between two reference systems.
type PointTransform func(p orb.Point) (orb.Point, error)

// Transform returns the point conversion from one CRS to another.
//
// Identical systems, and the two geographic systems, convert as identity.
// An unknown or unsupported CRS on either side is an error.
func Transform(from, to CRS) (PointTransform, error) {
	if from == to || (from.IsGeographic() && to.IsGeographic()) {
		if !from.IsKnown() {
			return nil, &UnsupportedCRSError{From: from, To: to, Reason: "both layers lack a CRS"}
		}
		return func(p orb.Point) (orb.Point, error) { return p, nil }, nil
	}
	if !from.IsKnown() || !to.IsKnown() {
		return nil, &UnsupportedCRSError{From: from, To: to, Reason: "layer has no CRS"}
	}
	if !from.Supported() || !to.Supported() {
		return nil, &UnsupportedCRSError{From: from, To: to, Reason: "only geographic and UTM systems are supported"}
	}

	toGeographic := func(p orb.Point) (orb.Point, error) { return p, nil }
	if zone, ok := from.utmZone(); ok {
		toGeographic = func(p orb.Point) (orb.Point, error) {
			lon, lat, err := projection.Inverse(p[0], p[1], zone)
			if err != nil {
				return orb.Point{}, err
			}
			return orb.Point{lon, lat}, nil
		}
	}

	zone, projected := to.utmZone()
	if !projected {
		return toGeographic, nil
	}
	forward := projection.NewForwarder(zone)
	return func(p orb.Point) (orb.Point, error) {
		g, err := toGeographic(p)
		if err != nil {
			return orb.Point{}, err
		}
		x, y := forward.Project(g[0], g[1])
		return orb.Point{x, y}, nil
	}, nil
}
