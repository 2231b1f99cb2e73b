package vector

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// assemblePolygons groups the rings of a shapefile polygon record into polygons.
// Shapefile outer rings run clockwise and holes counter-clockwise; a hole is
// attached to the smallest outer ring that contains its first vertex, so holes
// of an island inside another polygon's hole stay with the island.
func assemblePolygons(rings []orb.Ring) orb.Geometry {
	var outers []orb.Polygon
	var holes []orb.Ring

	for _, ring := range rings {
		ring = ensureRingClosure(ring)
		if len(ring) < 4 {
			continue // degenerate
		}
		if ring.Orientation() == orb.CW {
			outers = append(outers, orb.Polygon{ring})
		} else {
			holes = append(holes, ring)
		}
	}

	areas := make([]float64, len(outers))
	for i, o := range outers {
		areas[i] = math.Abs(planar.Area(o[0]))
	}

	for _, hole := range holes {
		parent := -1
		for i := range outers {
			if areas[i] == 0 || !planar.RingContains(outers[i][0], hole[0]) {
				continue
			}
			if parent < 0 || areas[i] < areas[parent] {
				parent = i
			}
		}
		if parent < 0 {
			// Counter-clockwise ring without a parent: writer ignored the
			// orientation rule, keep it as an outer ring.
			outers = append(outers, orb.Polygon{hole})
			continue
		}
		outers[parent] = append(outers[parent], hole)
	}

	switch len(outers) {
	case 0:
		return orb.Polygon{}
	case 1:
		return outers[0]
	default:
		return orb.MultiPolygon(outers)
	}
}

// ensureRingClosure ensures a ring is closed (first coordinate == last)
func ensureRingClosure(ring orb.Ring) orb.Ring {
	if len(ring) < 3 {
		return ring // Not enough points for a ring
	}

	if ring.Closed() {
		return ring
	}

	closed := make(orb.Ring, len(ring)+1)
	copy(closed, ring)
	closed[len(ring)] = ring[0]
	return closed
}

// polygons flattens a polygonal geometry into its polygons
func polygons(g orb.Geometry) []orb.Polygon {
	switch geom := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{geom}
	case orb.MultiPolygon:
		return geom
	default:
		return nil
	}
}
