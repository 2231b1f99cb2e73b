package vector

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
)

// Feature is one polygon record of a vector dataset
type Feature struct {
	// ID is the zero-based record number in the source file
	ID int64
	// Geometry is an orb.Polygon or orb.MultiPolygon
	Geometry orb.Geometry
	// Attributes holds every attribute of the record as text, keyed by field name
	Attributes map[string]string
}

// Dataset is the raw content of one vector file
type Dataset struct {
	Path     string
	Format   string // "shapefile" or "geojson"
	EPSG     int    // 0 when the file carries no CRS information
	Fields   []string
	Features []Feature
}

// attributeText renders a decoded GeoJSON property as text.
// Numbers keep their shortest exact representation so identifiers such as
// 12345678 are not turned into 1.2345678e+07.
func attributeText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
