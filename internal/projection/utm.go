// Package projection converts coordinates between geographic longitude/latitude
// and Universal Transverse Mercator easting/northing in a fixed zone.
//
// The forward direction uses github.com/wroge/wgs84, which projects into any
// requested zone. The inverse direction uses github.com/im7mortal/UTM.
package projection

import (
	"fmt"

	"github.com/im7mortal/UTM"
	"github.com/wroge/wgs84"
)

// Zone identifies a UTM zone and hemisphere.
type Zone struct {
	Number int
	North  bool
}

// Valid reports whether the zone number is within 1..60.
func (z Zone) Valid() bool {
	return z.Number >= 1 && z.Number <= 60
}

// CentralMeridian returns the zone's central meridian in degrees.
func (z Zone) CentralMeridian() float64 {
	return float64((z.Number-1)*6-180) + 3
}

func (z Zone) String() string {
	h := "N"
	if !z.North {
		h = "S"
	}
	return fmt.Sprintf("%d%s", z.Number, h)
}

// Forwarder projects lon/lat (degrees) into easting/northing (metres) of a
// fixed zone. Points outside the zone are projected against the zone's
// central meridian; accuracy degrades with distance.
type Forwarder struct {
	zone      Zone
	transform func(lon, lat, h float64) (float64, float64, float64)
}

// NewForwarder returns the forward projection into zone z.
func NewForwarder(z Zone) *Forwarder {
	return &Forwarder{
		zone:      z,
		transform: wgs84.LonLat().To(wgs84.UTM(float64(z.Number), z.North)),
	}
}

// Zone returns the target zone.
func (f *Forwarder) Zone() Zone {
	return f.zone
}

// Project converts a lon/lat point.
func (f *Forwarder) Project(lon, lat float64) (x, y float64) {
	x, y, _ = f.transform(lon, lat, 0)
	return x, y
}

// Forward projects lon/lat (degrees) into easting/northing (metres) of zone z.
func Forward(lon, lat float64, z Zone) (x, y float64) {
	return NewForwarder(z).Project(lon, lat)
}

// Inverse converts easting/northing in zone z back to lon/lat degrees.
func Inverse(x, y float64, z Zone) (lon, lat float64, err error) {
	lat, lon, err = UTM.ToLatLon(x, y, z.Number, "", z.North)
	if err != nil {
		return 0, 0, fmt.Errorf("utm zone %s: %w", z, err)
	}
	return lon, lat, nil
}
