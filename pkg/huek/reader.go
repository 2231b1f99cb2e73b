package huek

import (
	"github.com/beetlebugorg/huek250/internal/vector"
)

// Reader reads polygon layers from ESRI Shapefiles and GeoJSON files.
//
// Create a reader with NewReader and use Read or ReadWithOptions.
type Reader interface {
	// Read reads a layer file with default options.
	//
	// The format is chosen by extension: .shp (with .dbf, .prj and optional
	// .cpg sidecars) or .geojson/.json.
	Read(path string) (*Layer, error)

	// ReadWithOptions reads a layer file with custom options.
	ReadWithOptions(path string, opts ReadOptions) (*Layer, error)
}

// ReadOptions configures how layer files are read.
type ReadOptions struct {
	// ValidateGeometry checks ring closure, vertex counts and, for
	// geographic layers, coordinate bounds.
	// Default: true
	ValidateGeometry bool

	// CRSOverride replaces the CRS detected from the file. Use it for
	// shapefiles without a .prj.
	// Default: zero (use the detected CRS)
	CRSOverride CRS

	// Encoding forces the DBF text encoding ("utf-8" or "windows-1252").
	// Default: empty (use the .cpg sidecar, else windows-1252)
	Encoding string
}

// DefaultReadOptions returns read options with defaults.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		ValidateGeometry: true,
	}
}

// NewReader creates a new layer reader.
//
// Example:
//
//	reader := huek.NewReader()
//	base, err := reader.Read("huek250_fl.shp")
func NewReader() Reader {
	return &readerWrapper{
		internal: vector.NewReader(),
	}
}

// readerWrapper wraps the internal reader and converts types
type readerWrapper struct {
	internal vector.Reader
}

func (r *readerWrapper) Read(path string) (*Layer, error) {
	return r.ReadWithOptions(path, DefaultReadOptions())
}

func (r *readerWrapper) ReadWithOptions(path string, opts ReadOptions) (*Layer, error) {
	internalOpts := vector.ReadOptions{
		ValidateGeometry: opts.ValidateGeometry,
		EPSG:             opts.CRSOverride.EPSG,
		Encoding:         opts.Encoding,
	}
	ds, err := r.internal.ReadWithOptions(path, internalOpts)
	if err != nil {
		return nil, err
	}
	return convertDataset(ds), nil
}

// convertDataset converts an internal dataset to a public layer
func convertDataset(ds *vector.Dataset) *Layer {
	features := make([]Feature, len(ds.Features))
	for i, f := range ds.Features {
		features[i] = NewFeature(f.ID, f.Geometry, f.Attributes)
	}
	return NewLayer(ds.Path, CRS{EPSG: ds.EPSG}, ds.Fields, features)
}
