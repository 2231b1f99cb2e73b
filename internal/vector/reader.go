// Package vector reads polygon layers from ESRI Shapefiles and GeoJSON files.
//
// Both readers produce a Dataset: polygon features with their attributes as
// text plus the EPSG code of the layer, detected from the .prj sidecar or the
// GeoJSON crs member.
package vector

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reader reads a vector file into a Dataset.
type Reader interface {
	// Read reads a file with default options
	Read(path string) (*Dataset, error)

	// ReadWithOptions reads a file with custom options
	ReadWithOptions(path string, opts ReadOptions) (*Dataset, error)
}

// ReadOptions configures reading behavior
type ReadOptions struct {
	// ValidateGeometry: if true, check ring closure, vertex counts and, for
	// geographic layers, coordinate bounds
	// Default: true
	ValidateGeometry bool

	// EPSG overrides the CRS detected from the file when non-zero
	EPSG int

	// Encoding forces the DBF text encoding ("utf-8" or "windows-1252").
	// Empty means: use the .cpg sidecar, else windows-1252
	Encoding string
}

// DefaultReadOptions returns read options with defaults
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		ValidateGeometry: true,
	}
}

// defaultReader implements the Reader interface
type defaultReader struct {
}

// NewReader creates a new vector reader
func NewReader() Reader {
	return &defaultReader{}
}

// Read reads a vector file with default options
func (r *defaultReader) Read(path string) (*Dataset, error) {
	return r.ReadWithOptions(path, DefaultReadOptions())
}

// ReadWithOptions dispatches on the file extension
func (r *defaultReader) ReadWithOptions(path string, opts ReadOptions) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		ds, err = readShapefile(path, opts)
	case ".geojson", ".json":
		ds, err = readGeoJSON(path)
	default:
		return nil, &ErrUnsupportedFormat{Path: path}
	}
	if err != nil {
		return nil, err
	}

	if opts.EPSG != 0 {
		ds.EPSG = opts.EPSG
	}

	if opts.ValidateGeometry {
		geographic := isGeographic(ds.EPSG)
		for i := range ds.Features {
			if err := ValidateFeature(&ds.Features[i], geographic); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	return ds, nil
}

// isGeographic reports whether an EPSG code denotes lon/lat degrees
func isGeographic(epsg int) bool {
	return epsg == 4326 || epsg == 4258
}
