package huek

import (
	"github.com/paulmach/orb"
)

// Bounds represents an axis-aligned bounding box in layer coordinates.
//
// Units follow the layer CRS: metres for UTM layers, decimal degrees for
// geographic ones.
type Bounds struct {
	MinX float64 // Western edge
	MaxX float64 // Eastern edge
	MinY float64 // Southern edge
	MaxY float64 // Northern edge
}

// Contains returns true if the point (x, y) is within the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: min(b.MinX, other.MinX),
		MaxX: max(b.MaxX, other.MaxX),
		MinY: min(b.MinY, other.MinY),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// Expand returns a new Bounds expanded by the given margin in all directions.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MaxX: b.MaxX + margin,
		MinY: b.MinY - margin,
		MaxY: b.MaxY + margin,
	}
}

// geometryBounds calculates the bounding box of a geometry.
func geometryBounds(g orb.Geometry) Bounds {
	if g == nil {
		return Bounds{}
	}
	bound := g.Bound()
	return Bounds{
		MinX: bound.Min[0],
		MaxX: bound.Max[0],
		MinY: bound.Min[1],
		MaxY: bound.Max[1],
	}
}
