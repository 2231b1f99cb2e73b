package vector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// readShapefile reads a polygon shapefile together with its .dbf attributes,
// .prj CRS and .cpg code page sidecars.
func readShapefile(path string, opts ReadOptions) (*Dataset, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer reader.Close()

	dec, err := dbfDecoder(path, opts.Encoding)
	if err != nil {
		return nil, err
	}

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	ds := &Dataset{
		Path:     path,
		Format:   "shapefile",
		Fields:   names,
		Features: make([]Feature, 0),
	}

	for reader.Next() {
		n, shape := reader.Shape()

		rings, ok := shapeRings(shape)
		if !ok {
			return nil, &ErrInvalidGeometry{
				FeatureID: int64(n),
				Type:      fmt.Sprintf("%T", shape),
				Reason:    "only polygon shapes are supported",
			}
		}

		attrs := make(map[string]string, len(names))
		for k, name := range names {
			raw := reader.ReadAttribute(n, k)
			val, err := dec.String(raw)
			if err != nil {
				return nil, fmt.Errorf("record %d field %s: decode: %w", n, name, err)
			}
			attrs[name] = strings.TrimSpace(val)
		}

		ds.Features = append(ds.Features, Feature{
			ID:         int64(n),
			Geometry:   assemblePolygons(rings),
			Attributes: attrs,
		})
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shapefile: %w", err)
	}

	if opts.EPSG == 0 {
		epsg, err := readPrj(path)
		if err != nil {
			return nil, err
		}
		ds.EPSG = epsg
	}

	return ds, nil
}

// shapeRings splits the parts of a polygon shape into rings
func shapeRings(shape shp.Shape) ([]orb.Ring, bool) {
	switch s := shape.(type) {
	case *shp.Polygon:
		return splitParts(s.Parts, s.Points), true
	case *shp.PolygonZ:
		return splitParts(s.Parts, s.Points), true
	case *shp.PolygonM:
		return splitParts(s.Parts, s.Points), true
	default:
		return nil, false
	}
}

// splitParts cuts the flat point array at the part offsets
func splitParts(parts []int32, points []shp.Point) []orb.Ring {
	rings := make([]orb.Ring, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			continue // corrupt part index
		}
		ring := make(orb.Ring, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}

// dbfDecoder picks the text decoding for .dbf attribute values.
// An explicit encoding wins, then the .cpg sidecar, then Windows-1252,
// which is what ArcGIS writes for German-language layers without a .cpg.
func dbfDecoder(path, explicit string) (*encoding.Decoder, error) {
	name := explicit
	if name == "" {
		data, err := os.ReadFile(sidecar(path, ".cpg"))
		switch {
		case err == nil:
			name = strings.TrimSpace(string(data))
		case errors.Is(err, os.ErrNotExist):
			name = "windows-1252"
		default:
			return nil, fmt.Errorf("failed to read code page: %w", err)
		}
	}

	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "utf8", "65001":
		return encoding.Nop.NewDecoder(), nil
	case "windows1252", "cp1252", "1252", "ansi 1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso88591", "88591", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported dbf code page %q", name)
	}
}

// readPrj returns the EPSG code declared in the .prj sidecar, or 0 without one
func readPrj(path string) (int, error) {
	data, err := os.ReadFile(sidecar(path, ".prj"))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read projection: %w", err)
	}
	return ParseCRS(string(data))
}

// sidecar returns the path of a file next to path with another extension
func sidecar(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
