package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile applies a YAML configuration file on top of c. Keys missing in
// the file keep their current value; unknown keys are an error.
// If the file does not exist, it returns ErrConfigNotFound.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// FindConfigFile returns the configuration file to load:
// 1. configPath, if given and present
// 2. $XDG_CONFIG_HOME/huek250/config.yaml, if present
//
// Returns an empty string if there is none.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if path := DefaultConfigFile(); fileExists(path) {
		return path
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ToolInputs is the section of one tool in the parameter file:
//
//	{"hydrogeology_attributes_huek": {
//	    "parameters": {"id_field_name": "id"},
//	    "data": {"huek": "/in/huek250.shp", "catchments": "/in/catchments.geojson"}}}
type ToolInputs struct {
	Parameters map[string]interface{} `yaml:"parameters"`
	Data       map[string]string      `yaml:"data"`
}

// ReadInputs reads the parameter file. JSON is decoded with the YAML
// decoder, which accepts it as a subset.
// If the file does not exist, it returns ErrInputsNotFound.
func ReadInputs(path string) (map[string]ToolInputs, error) {
	data, err := os.ReadFile(path) //nolint:gosec // parameter file path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrInputsNotFound
		}
		return nil, err
	}

	var inputs map[string]ToolInputs
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inputs, nil
}

// ApplyInputs takes the parameters and data paths of tool from the
// parameter file. Values present in the file override c.
func (c *Config) ApplyInputs(inputs map[string]ToolInputs, tool string) error {
	section, ok := inputs[tool]
	if !ok {
		return fmt.Errorf("parameter file has no section for tool %q", tool)
	}

	if v, ok := section.Parameters["id_field_name"]; ok {
		s, ok := v.(string)
		if !ok {
			return &ValidationError{Field: "id_field_name", Reason: fmt.Sprintf("must be a string, got %T", v)}
		}
		c.IDField = s
	}
	if v, ok := section.Data["huek"]; ok {
		c.BasePath = v
	}
	if v, ok := section.Data["catchments"]; ok {
		c.CatchmentsPath = v
	}
	return nil
}
