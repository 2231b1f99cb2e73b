// Package config holds the run configuration of the huek250 tool and loads
// it from defaults, an optional YAML file, the tool parameter file
// (inputs.json) and the environment.
package config
