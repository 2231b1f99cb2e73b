package huek

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/twpayne/go-geos"
)

// toGEOS converts an orb geometry to GEOS via WKB. Invalid polygons
// (self-intersections, bow-ties) are repaired with MakeValid so that
// intersection does not raise a topology exception.
func toGEOS(g orb.Geometry) (*geos.Geom, error) {
	data, err := wkb.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode wkb: %w", err)
	}

	geom, err := geos.NewGeomFromWKB(data)
	if err != nil {
		return nil, fmt.Errorf("decode wkb: %w", err)
	}

	if !geom.IsValid() {
		geom = geom.MakeValid()
	}
	return geom, nil
}
