package huek

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSplitCatchment(t *testing.T) {
	v := DefaultVocabulary()
	base := splitBase(t, v)
	c := Catchment{ID: "c1", Geometry: rect(0, 0, 100, 100)}

	for _, a := range v.Attributes {
		t.Run(a.Name, func(t *testing.T) {
			row, err := NewExtractor(a, v.Shared, DefaultTolerance).Extract(base, c)
			require.NoError(t, err)

			assert.Equal(t, "c1", row.CatchmentID)
			assert.Equal(t, a.Name, row.Attribute)
			assert.Equal(t, a.Columns(), row.Columns)

			first, ok := row.Value(a.Categories[0].Column)
			require.True(t, ok)
			assert.InDelta(t, 60, first, 1e-9)
			for _, col := range a.Columns()[1:] {
				got, _ := row.Value(col)
				assert.Zero(t, got, col)
			}
			assert.InDelta(t, 40, row.Shared[Waterbody], 1e-9)
			assert.Zero(t, row.Shared[NoData])
			assert.InDelta(t, 100, row.Sum(), 1e-9)
		})
	}
}

func TestExtractCatchmentInsideOnePolygon(t *testing.T) {
	v := DefaultVocabulary()
	base := splitBase(t, v)
	kf, _ := v.Attribute("kf")

	row, err := NewExtractor(kf, v.Shared, DefaultTolerance).Extract(base, Catchment{ID: "inner", Geometry: rect(10, 10, 20, 20)})
	require.NoError(t, err)

	got, _ := row.Value("kf_very_high_perc")
	assert.Equal(t, 100.0, got)
	assert.Zero(t, row.Shared[Waterbody])
}

func TestExtractGapCatchment(t *testing.T) {
	v := DefaultVocabulary()
	base := splitBase(t, v)
	kf, _ := v.Attribute("kf")

	_, err := NewExtractor(kf, v.Shared, DefaultTolerance).Extract(base, Catchment{ID: "gap", Geometry: rect(200, 200, 300, 300)})

	var degenerate *DegenerateCatchmentError
	require.True(t, errors.As(err, &degenerate), "got %v", err)
	assert.Equal(t, "gap", degenerate.CatchmentID)
}

func TestExtractTouchingCatchmentIsDegenerate(t *testing.T) {
	v := DefaultVocabulary()
	base := splitBase(t, v)
	kf, _ := v.Attribute("kf")

	_, err := NewExtractor(kf, v.Shared, DefaultTolerance).Extract(base, Catchment{ID: "edge", Geometry: rect(100, 0, 110, 100)})

	var degenerate *DegenerateCatchmentError
	assert.True(t, errors.As(err, &degenerate), "got %v", err)
}

func TestExtractUnknownLabelFailsConsistency(t *testing.T) {
	v := DefaultVocabulary()
	kf, _ := v.Attribute("kf")

	attrs := labelled(v, firstCategory)
	attrs[kf.Field] = "unbekannt"
	base := baseLayer(t,
		NewFeature(0, rect(0, 0, 60, 100), attrs),
		NewFeature(1, rect(60, 0, 100, 100), labelled(v, sharedLabel(v, Waterbody))),
	)

	_, err := NewExtractor(kf, v.Shared, DefaultTolerance).Extract(base, Catchment{ID: "c1", Geometry: rect(0, 0, 100, 100)})

	var consistency *ConsistencyError
	require.True(t, errors.As(err, &consistency), "got %v", err)
	assert.Equal(t, "kf", consistency.Attribute)
	assert.InDelta(t, 40, consistency.Sum, 1e-9)
}

func TestExtractSharedValuesIdenticalAcrossAttributes(t *testing.T) {
	v := DefaultVocabulary()
	base := baseLayer(t,
		NewFeature(0, rect(0, 0, 33, 100), labelled(v, firstCategory)),
		NewFeature(1, rect(33, 0, 71, 100), labelled(v, sharedLabel(v, Waterbody))),
		NewFeature(2, rect(71, 0, 100, 100), labelled(v, sharedLabel(v, NoData))),
	)
	c := Catchment{ID: "c1", Geometry: rect(5, 5, 97, 93)}

	var rows []CategoryRow
	for _, a := range v.Attributes {
		row, err := NewExtractor(a, v.Shared, DefaultTolerance).Extract(base, c)
		require.NoError(t, err)
		rows = append(rows, row)
	}

	for _, row := range rows[1:] {
		assert.Equal(t, rows[0].Shared[Waterbody], row.Shared[Waterbody], row.Attribute)
		assert.Equal(t, rows[0].Shared[NoData], row.Shared[NoData], row.Attribute)
	}
}
