package huek

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/twpayne/go-geos"
)

// Layer is a polygon layer with text attributes in one CRS.
//
// The base map and the catchment set are both layers. A layer builds an
// R-tree over feature bounds on construction; GEOS geometries for clipping
// are created lazily on first use.
//
// A Layer is not safe for concurrent clipping.
type Layer struct {
	name         string
	crs          CRS
	fields       []string
	features     []Feature
	spatialIndex *spatialIndex
	bounds       Bounds

	geosCache []*geos.Geom
}

// Feature is one polygon of a layer with its attributes.
type Feature struct {
	id         int64
	geometry   orb.Geometry
	attributes map[string]string
}

// NewFeature creates a feature. The geometry must be an orb.Polygon or
// orb.MultiPolygon.
func NewFeature(id int64, geometry orb.Geometry, attributes map[string]string) Feature {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return Feature{id: id, geometry: geometry, attributes: attributes}
}

// ID returns the record number of the feature in its source file.
func (f *Feature) ID() int64 {
	return f.id
}

// Geometry returns the feature polygon or multipolygon.
func (f *Feature) Geometry() orb.Geometry {
	return f.geometry
}

// Attributes returns all attributes of the feature.
func (f *Feature) Attributes() map[string]string {
	return f.attributes
}

// Attribute returns a single attribute value.
func (f *Feature) Attribute(name string) (string, bool) {
	v, ok := f.attributes[name]
	return v, ok
}

// Area returns the planar area of the feature in squared CRS units.
func (f *Feature) Area() float64 {
	return planar.Area(f.geometry)
}

// NewLayer creates a layer from features. Fields are taken from the
// features' attribute keys when fields is nil.
func NewLayer(name string, crs CRS, fields []string, features []Feature) *Layer {
	if fields == nil {
		seen := make(map[string]bool)
		for _, f := range features {
			for k := range f.attributes {
				if !seen[k] {
					seen[k] = true
					fields = append(fields, k)
				}
			}
		}
		sort.Strings(fields)
	}

	l := &Layer{
		name:     name,
		crs:      crs,
		fields:   fields,
		features: features,
	}
	l.buildSpatialIndex()
	return l
}

// Name returns the layer name, usually the source file path.
func (l *Layer) Name() string { return l.name }

// CRS returns the coordinate reference system of the layer.
func (l *Layer) CRS() CRS { return l.crs }

// Fields returns the attribute field names of the layer.
func (l *Layer) Fields() []string { return l.fields }

// HasField reports whether the layer declares an attribute field.
func (l *Layer) HasField(name string) bool {
	for _, f := range l.fields {
		if f == name {
			return true
		}
	}
	return false
}

// Features returns all features in source order.
func (l *Layer) Features() []Feature { return l.features }

// FeatureCount returns the number of features in the layer.
func (l *Layer) FeatureCount() int { return len(l.features) }

// Bounds returns the bounding box of all features.
func (l *Layer) Bounds() Bounds { return l.bounds }

// spatialIndex provides O(log n) bounding box queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedFeature wraps a feature position for R-tree storage.
type indexedFeature struct {
	index  int
	bounds Bounds
}

// Bounds implements rtreego.Spatial interface.
func (f *indexedFeature) Bounds() rtreego.Rect {
	return boundsRect(f.bounds)
}

// boundsRect converts bounds to an R-tree rectangle.
// R-tree requires non-zero dimensions, so degenerate extents get an epsilon.
func boundsRect(b Bounds) rtreego.Rect {
	const epsilon = 1e-9
	point := rtreego.Point{b.MinX, b.MinY}
	lengths := []float64{
		max(b.MaxX-b.MinX, epsilon),
		max(b.MaxY-b.MinY, epsilon),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// buildSpatialIndex creates the R-tree and the layer bounds.
func (l *Layer) buildSpatialIndex() {
	if len(l.features) == 0 {
		return
	}

	// Create R-tree (2D, min=25 children, max=50 children)
	rtree := rtreego.NewTree(2, 25, 50)

	for i := range l.features {
		fb := geometryBounds(l.features[i].geometry)
		rtree.Insert(&indexedFeature{index: i, bounds: fb})

		if i == 0 {
			l.bounds = fb
		} else {
			l.bounds = l.bounds.Union(fb)
		}
	}

	l.spatialIndex = &spatialIndex{rtree: rtree}
}

// candidates returns the positions of features whose bounds intersect b,
// in source order. Source order keeps area sums reproducible.
func (l *Layer) candidates(b Bounds) []int {
	if l.spatialIndex == nil {
		return nil
	}

	spatials := l.spatialIndex.rtree.SearchIntersect(boundsRect(b))
	result := make([]int, 0, len(spatials))
	for _, s := range spatials {
		result = append(result, s.(*indexedFeature).index)
	}
	sort.Ints(result)
	return result
}

// FeaturesInBounds returns all features whose bounding box intersects b.
func (l *Layer) FeaturesInBounds(b Bounds) []Feature {
	idx := l.candidates(b)
	result := make([]Feature, len(idx))
	for i, j := range idx {
		result[i] = l.features[j]
	}
	return result
}

// Reproject returns a copy of the layer with every geometry transformed
// into the target CRS. The receiver is left unchanged.
func (l *Layer) Reproject(to CRS) (*Layer, error) {
	transform, err := Transform(l.crs, to)
	if err != nil {
		return nil, fmt.Errorf("reproject %s: %w", l.name, err)
	}
	if l.crs == to {
		return l, nil
	}

	features := make([]Feature, len(l.features))
	for i, f := range l.features {
		var terr error
		g := project.Geometry(orb.Clone(f.geometry), func(p orb.Point) orb.Point {
			out, err := transform(p)
			if err != nil && terr == nil {
				terr = err
			}
			return out
		})
		if terr != nil {
			return nil, fmt.Errorf("reproject %s feature %d: %w", l.name, f.id, terr)
		}
		features[i] = Feature{id: f.id, geometry: g, attributes: f.attributes}
	}

	return NewLayer(l.name, to, l.fields, features), nil
}

// Catchment is a single catchment polygon in the base map CRS.
type Catchment struct {
	ID       string
	Geometry orb.Geometry
}

// Catchments returns one Catchment per feature, identified by idField.
func (l *Layer) Catchments(idField string) ([]Catchment, error) {
	if !l.HasField(idField) {
		return nil, &MissingFieldError{Layer: l.name, Field: idField}
	}

	result := make([]Catchment, len(l.features))
	for i, f := range l.features {
		id, _ := f.Attribute(idField)
		result[i] = Catchment{ID: id, Geometry: f.geometry}
	}
	return result, nil
}

// ClipPiece is the part of one base-map feature inside a clip mask.
type ClipPiece struct {
	Feature *Feature
	Area    float64
}

// Clip intersects the layer with a mask polygon and returns the area of
// every feature part inside the mask, in source order. Features that only
// touch the mask are omitted.
func (l *Layer) Clip(mask orb.Geometry) (pieces []ClipPiece, err error) {
	// go-geos panics on GEOS exceptions (e.g. TopologyException).
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clip %s: geos: %v", l.name, r)
		}
	}()

	maskGeom, err := toGEOS(mask)
	if err != nil {
		return nil, fmt.Errorf("clip %s: mask: %w", l.name, err)
	}

	for _, i := range l.candidates(geometryBounds(mask)) {
		g, err := l.geosGeometry(i)
		if err != nil {
			return nil, fmt.Errorf("clip %s: feature %d: %w", l.name, l.features[i].id, err)
		}

		inter := g.Intersection(maskGeom)
		if inter.IsEmpty() {
			continue
		}
		area := inter.Area()
		if area <= 0 {
			continue
		}
		pieces = append(pieces, ClipPiece{Feature: &l.features[i], Area: area})
	}

	return pieces, nil
}

// geosGeometry returns the cached GEOS geometry of feature i.
func (l *Layer) geosGeometry(i int) (*geos.Geom, error) {
	if l.geosCache == nil {
		l.geosCache = make([]*geos.Geom, len(l.features))
	}
	if g := l.geosCache[i]; g != nil {
		return g, nil
	}

	g, err := toGEOS(l.features[i].geometry)
	if err != nil {
		return nil, err
	}
	l.geosCache[i] = g
	return g, nil
}
