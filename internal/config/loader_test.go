package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", `
output_dir: /tmp/out
tolerance: 0.05
degenerate: exclude
strict_vocabulary: true
markdown: /tmp/out/summary.md
`)

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 0.05, cfg.Tolerance)
	assert.Equal(t, "exclude", cfg.Degenerate)
	assert.True(t, cfg.StrictVocabulary)
	assert.Equal(t, "/tmp/out/summary.md", cfg.MarkdownFile)
	// untouched defaults survive
	assert.Equal(t, "/in/inputs.json", cfg.InputsFile)
	assert.Equal(t, "0777", cfg.Permissions)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		err := Default().LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.yaml", "tolerence: 0.2\n")
		err := Default().LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tolerence")
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.yaml", "")
		assert.NoError(t, Default().LoadFile(path))
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "custom.yaml", "verbose: true\n")
	assert.Equal(t, path, FindConfigFile(path))
	assert.Empty(t, FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

const inputsJSON = `{
  "hydrogeology_attributes_huek": {
    "parameters": {"id_field_name": "id"},
    "data": {"huek": "/in/huek250.shp", "catchments": "/in/catchments.geojson"}
  },
  "other_tool": {"parameters": {}}
}`

func TestReadAndApplyInputs(t *testing.T) {
	t.Parallel()

	inputs, err := ReadInputs(writeFile(t, "inputs.json", inputsJSON))
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, cfg.ApplyInputs(inputs, ToolName))
	assert.Equal(t, "id", cfg.IDField)
	assert.Equal(t, "/in/huek250.shp", cfg.BasePath)
	assert.Equal(t, "/in/catchments.geojson", cfg.CatchmentsPath)
	assert.NoError(t, cfg.Validate())

	assert.Error(t, Default().ApplyInputs(inputs, "missing_tool"))
}

func TestApplyInputsKeepsUnsetValues(t *testing.T) {
	t.Parallel()

	inputs, err := ReadInputs(writeFile(t, "inputs.json", inputsJSON))
	require.NoError(t, err)

	cfg := Default()
	cfg.IDField = "gauge"
	require.NoError(t, cfg.ApplyInputs(inputs, "other_tool"))
	assert.Equal(t, "gauge", cfg.IDField)
}

func TestApplyInputsRejectsNonStringID(t *testing.T) {
	t.Parallel()

	inputs, err := ReadInputs(writeFile(t, "inputs.json", `{"t": {"parameters": {"id_field_name": 12}}}`))
	require.NoError(t, err)

	err = Default().ApplyInputs(inputs, "t")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve), "got %v", err)
}

func TestReadInputsMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadInputs(filepath.Join(t.TempDir(), "inputs.json"))
	assert.ErrorIs(t, err, ErrInputsNotFound)
}
