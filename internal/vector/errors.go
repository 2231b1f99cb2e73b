package vector

import (
	"fmt"
)

// ErrInvalidCoordinate indicates a geographic coordinate out of valid bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrInvalidGeometry indicates a feature geometry that cannot take part in area statistics
type ErrInvalidGeometry struct {
	FeatureID int64
	Type      string
	Reason    string
}

func (e *ErrInvalidGeometry) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("feature %d: invalid geometry (%s): %s", e.FeatureID, e.Type, e.Reason)
	}
	return fmt.Sprintf("feature %d: invalid geometry: %s", e.FeatureID, e.Reason)
}

// ErrUnsupportedFormat indicates a file extension no reader handles
type ErrUnsupportedFormat struct {
	Path string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported vector format: %s (expected .shp, .geojson or .json)", e.Path)
}

// ErrUnknownCRS indicates a CRS definition that cannot be mapped to an EPSG code
type ErrUnknownCRS struct {
	Definition string
}

func (e *ErrUnknownCRS) Error() string {
	def := e.Definition
	if len(def) > 80 {
		def = def[:80] + "..."
	}
	return fmt.Sprintf("cannot determine EPSG code from CRS definition %q", def)
}
