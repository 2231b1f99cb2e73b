package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"

	"github.com/beetlebugorg/huek250/pkg/huek"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "huek250"

	// DefaultInputsFile is where the container runtime mounts the tool
	// parameters.
	DefaultInputsFile = "/in/inputs.json"

	// DefaultOutputDir is the container output mount.
	DefaultOutputDir = "/out"

	// ToolName is the only tool this binary runs.
	ToolName = "hydrogeology_attributes_huek"

	// DefaultIndexName is the header of the catchment column in the output.
	DefaultIndexName = "gauge_id"

	// DefaultPermissions is applied to the output tree after a run so that
	// the host user can remove files written by the container.
	DefaultPermissions = "0777"

	// ToolRunEnv names the environment variable selecting the tool.
	ToolRunEnv = "TOOL_RUN"
)

// Config holds all options of one run.
//
// The YAML keys are the keys of the optional configuration file.
type Config struct {
	// InputsFile is the json2args-style parameter file.
	InputsFile string `yaml:"inputs_file"`

	// OutputDir receives the CSV and, optionally, error.log.
	OutputDir string `yaml:"output_dir"`

	// ToolRun is the tool requested through TOOL_RUN, lower-cased.
	ToolRun string `yaml:"-"`

	// IDField is the catchment attribute holding the catchment identifier.
	IDField string `yaml:"id_field_name"`

	// BasePath and CatchmentsPath are the two input layers.
	BasePath       string `yaml:"huek"`
	CatchmentsPath string `yaml:"catchments"`

	// BaseEPSG and CatchmentsEPSG override the CRS detected from the files.
	BaseEPSG       int `yaml:"huek_epsg"`
	CatchmentsEPSG int `yaml:"catchments_epsg"`

	IndexName  string  `yaml:"index_name"`
	Tolerance  float64 `yaml:"tolerance"`
	Degenerate string  `yaml:"degenerate"`

	// VocabularyFile replaces the built-in vocabulary when set.
	VocabularyFile string `yaml:"vocabulary"`

	// StrictVocabulary turns base-map labels unknown to the vocabulary
	// into a fatal error instead of a warning.
	StrictVocabulary bool `yaml:"strict_vocabulary"`

	// Permissions is the octal mode applied recursively to OutputDir.
	// Empty disables the chmod.
	Permissions string `yaml:"permissions"`

	// MarkdownFile and SQLiteFile enable the optional outputs.
	MarkdownFile string `yaml:"markdown"`
	SQLiteFile   string `yaml:"sqlite"`

	Verbose bool `yaml:"verbose"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		InputsFile:  DefaultInputsFile,
		OutputDir:   DefaultOutputDir,
		IndexName:   DefaultIndexName,
		Tolerance:   huek.DefaultTolerance,
		Degenerate:  string(huek.DegenerateFail),
		Permissions: DefaultPermissions,
	}
}

// XDGConfigDir returns the XDG config directory of the tool.
// On Linux: ~/.config/huek250
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigFile returns the configuration file looked up when no
// --config flag is given.
func DefaultConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// ApplyEnv reads TOOL_RUN.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(ToolRunEnv); ok {
		c.SetTool(v)
	}
}

// SetTool selects the tool to run. Names are matched case-insensitively.
func (c *Config) SetTool(name string) {
	c.ToolRun = strings.ToLower(strings.TrimSpace(name))
}

// CheckTool verifies that TOOL_RUN selects this tool. An empty value
// returns ErrNoToolRun, any other unknown name *UnknownToolError.
func (c *Config) CheckTool() error {
	switch c.ToolRun {
	case "":
		return ErrNoToolRun
	case ToolName:
		return nil
	default:
		return &UnknownToolError{Tool: c.ToolRun}
	}
}

// FileMode parses Permissions. ok is false when no chmod is configured.
func (c *Config) FileMode() (mode os.FileMode, ok bool, err error) {
	if c.Permissions == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(c.Permissions, "0o"), 8, 32)
	if err != nil || v > 0o7777 {
		return 0, false, fmt.Errorf("permissions %q is not an octal file mode", c.Permissions)
	}
	return os.FileMode(v), true, nil
}

// AggregateOptions converts the configuration into aggregator options.
func (c *Config) AggregateOptions() (huek.AggregateOptions, error) {
	policy, err := huek.ParseDegeneratePolicy(c.Degenerate)
	if err != nil {
		return huek.AggregateOptions{}, err
	}
	opts := huek.DefaultAggregateOptions()
	opts.Tolerance = c.Tolerance
	opts.Degenerate = policy
	opts.IndexName = c.IndexName
	return opts, nil
}

// LoadOptions converts the configuration into reader options.
func (c *Config) LoadOptions() huek.LoadOptions {
	opts := huek.DefaultLoadOptions()
	opts.Base.CRSOverride = huek.CRS{EPSG: c.BaseEPSG}
	opts.Catchments.CRSOverride = huek.CRS{EPSG: c.CatchmentsEPSG}
	return opts
}

// Validate checks the configuration and returns the first problem found
// as *ValidationError.
func (c *Config) Validate() error {
	if c.IDField == "" {
		return &ValidationError{Field: "id_field_name", Reason: "must be set"}
	}
	if c.BasePath == "" {
		return &ValidationError{Field: "huek", Reason: "no base map path"}
	}
	if c.CatchmentsPath == "" {
		return &ValidationError{Field: "catchments", Reason: "no catchment path"}
	}
	if c.OutputDir == "" {
		return &ValidationError{Field: "output_dir", Reason: "must be set"}
	}
	if c.IndexName == "" {
		return &ValidationError{Field: "index_name", Reason: "must be set"}
	}
	if c.Tolerance <= 0 {
		return &ValidationError{Field: "tolerance", Reason: "must be positive"}
	}
	if _, err := huek.ParseDegeneratePolicy(c.Degenerate); err != nil {
		return &ValidationError{Field: "degenerate", Reason: err.Error()}
	}
	if _, _, err := c.FileMode(); err != nil {
		return &ValidationError{Field: "permissions", Reason: err.Error()}
	}
	overrides := []struct {
		field string
		epsg  int
	}{
		{"huek_epsg", c.BaseEPSG},
		{"catchments_epsg", c.CatchmentsEPSG},
	}
	for _, o := range overrides {
		if o.epsg != 0 && !(huek.CRS{EPSG: o.epsg}).Supported() {
			return &ValidationError{Field: o.field, Reason: fmt.Sprintf("EPSG:%d is not supported", o.epsg)}
		}
	}
	return nil
}
