package huek

import (
	"testing"

	"github.com/paulmach/orb"
)

// rect returns a closed, clockwise rectangle.
func rect(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{orb.Ring{{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}, {x0, y0}}}
}

// labelled sets every attribute field of the vocabulary to the label
// returned by label.
func labelled(v *Vocabulary, label func(a Attribute) string) map[string]string {
	attrs := make(map[string]string, len(v.Attributes))
	for _, a := range v.Attributes {
		attrs[a.Field] = label(a)
	}
	return attrs
}

func firstCategory(a Attribute) string { return a.Categories[0].Label }

func sharedLabel(v *Vocabulary, key SharedCategory) func(Attribute) string {
	return func(Attribute) string { return v.Shared.Get(key).Label }
}

func baseLayer(t *testing.T, features ...Feature) *Layer {
	t.Helper()
	return NewLayer("base", ETRS89UTM32N, nil, features)
}

type testCatchment struct {
	id      string
	polygon orb.Polygon
}

func catchmentLayer(t *testing.T, crs CRS, catchments ...testCatchment) *Layer {
	t.Helper()
	features := make([]Feature, len(catchments))
	for i, c := range catchments {
		features[i] = NewFeature(int64(i), c.polygon, map[string]string{"id": c.id})
	}
	return NewLayer("catchments", crs, []string{"id"}, features)
}

// splitBase is a 100x100 base map: the western 60 units carry the first
// category of every attribute, the eastern 40 units are water.
func splitBase(t *testing.T, v *Vocabulary) *Layer {
	t.Helper()
	return baseLayer(t,
		NewFeature(0, rect(0, 0, 60, 100), labelled(v, firstCategory)),
		NewFeature(1, rect(60, 0, 100, 100), labelled(v, sharedLabel(v, Waterbody))),
	)
}
