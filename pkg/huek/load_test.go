package huek

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/beetlebugorg/huek250/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const baseGeoJSON = `{
  "type": "FeatureCollection",
  "crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG::25832"}},
  "features": [
    {
      "type": "Feature",
      "properties": {"kf_bez": "sehr hoch (>1E-2)", "LChar_bez": "Grundwasser-Geringleiter", "HA_bez": "Kluft", "VF_bez": "Festgestein", "GA_bez": "Sediment", "GC_bez": "silikatisch"},
      "geometry": {"type": "Polygon", "coordinates": [[[390000, 5670000], [390000, 5680000], [400000, 5680000], [400000, 5670000], [390000, 5670000]]]}
    }
  ]
}`

const catchmentGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"id": "DE110"},
      "geometry": {"type": "Polygon", "coordinates": [[[7.5, 51.2], [7.5, 51.21], [7.51, 51.21], [7.51, 51.2], [7.5, 51.2]]]}
    }
  ]
}`

func writeLayers(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "huek250.geojson")
	catchments := filepath.Join(dir, "catchments.geojson")
	require.NoError(t, os.WriteFile(base, []byte(baseGeoJSON), 0o644))
	require.NoError(t, os.WriteFile(catchments, []byte(catchmentGeoJSON), 0o644))
	return base, catchments
}

func TestReaderRead(t *testing.T) {
	basePath, _ := writeLayers(t)

	l, err := NewReader().Read(basePath)
	require.NoError(t, err)

	assert.Equal(t, basePath, l.Name())
	assert.Equal(t, ETRS89UTM32N, l.CRS())
	assert.Equal(t, 1, l.FeatureCount())
	assert.True(t, l.HasField("GC_bez"))

	label, ok := l.Features()[0].Attribute("kf_bez")
	assert.True(t, ok)
	assert.Equal(t, "sehr hoch (>1E-2)", label)
}

func TestReaderCRSOverride(t *testing.T) {
	_, catchmentPath := writeLayers(t)

	opts := DefaultReadOptions()
	opts.CRSOverride = ETRS89
	l, err := NewReader().ReadWithOptions(catchmentPath, opts)
	require.NoError(t, err)
	assert.Equal(t, ETRS89, l.CRS())
}

func TestReaderUnsupportedFormat(t *testing.T) {
	_, err := NewReader().Read(filepath.Join(t.TempDir(), "map.gpkg"))

	var unsupported *vector.ErrUnsupportedFormat
	assert.True(t, errors.As(err, &unsupported), "got %v", err)
}

func TestLoadLayers(t *testing.T) {
	basePath, catchmentPath := writeLayers(t)

	base, catchments, err := LoadLayers(context.Background(), nil, basePath, catchmentPath)
	require.NoError(t, err)
	assert.Equal(t, ETRS89UTM32N, base.CRS())
	assert.Equal(t, WGS84, catchments.CRS())

	table, err := ExtractHydrogeologyAttributes(context.Background(), base, catchments, "id")
	require.NoError(t, err)

	kf, _ := table.Value("DE110", "kf_very_high_perc")
	aquitard, _ := table.Value("DE110", "aquitard_perc")
	assert.Equal(t, 100.0, kf)
	assert.Equal(t, 100.0, aquitard)
}

func TestLoadLayersMissingFile(t *testing.T) {
	basePath, _ := writeLayers(t)

	base, catchments, err := LoadLayers(context.Background(), NewReader(), basePath, filepath.Join(t.TempDir(), "nope.geojson"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catchments")
	assert.Nil(t, base)
	assert.Nil(t, catchments)
}

func TestLoadLayersCancelled(t *testing.T) {
	basePath, catchmentPath := writeLayers(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := LoadLayers(ctx, nil, basePath, catchmentPath)
	assert.ErrorIs(t, err, context.Canceled)
}
