package vector

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// crsMember is the pre-RFC 7946 "crs" member still written by GDAL/QGIS
// for projected GeoJSON.
type crsMember struct {
	CRS *struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
}

// readGeoJSON reads a FeatureCollection of polygons.
// Without a crs member the layer is EPSG:4326 per RFC 7946.
func readGeoJSON(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}

	epsg := 4326
	var head crsMember
	if err := json.Unmarshal(data, &head); err == nil && head.CRS != nil && head.CRS.Properties.Name != "" {
		epsg, err = ParseCRS(head.CRS.Properties.Name)
		if err != nil {
			return nil, err
		}
	}

	ds := &Dataset{
		Path:     path,
		Format:   "geojson",
		EPSG:     epsg,
		Features: make([]Feature, 0, len(fc.Features)),
	}

	seen := make(map[string]bool)
	for i, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			typ := "null"
			if f.Geometry != nil {
				typ = f.Geometry.GeoJSONType()
			}
			return nil, &ErrInvalidGeometry{
				FeatureID: int64(i),
				Type:      typ,
				Reason:    "only Polygon and MultiPolygon features are supported",
			}
		}

		attrs := make(map[string]string, len(f.Properties))
		for k, v := range f.Properties {
			attrs[k] = attributeText(v)
			if !seen[k] {
				seen[k] = true
				ds.Fields = append(ds.Fields, k)
			}
		}

		ds.Features = append(ds.Features, Feature{
			ID:         int64(i),
			Geometry:   f.Geometry,
			Attributes: attrs,
		})
	}
	sort.Strings(ds.Fields)

	return ds, nil
}
