// Package main provides the entry point for the huek250 CLI.
//
// huek250 computes the share of every HÜK250 hydrogeology category per
// catchment and writes it as a CSV table. It is meant to run as a tool
// container: parameters come from /in/inputs.json, results go to /out, and
// the TOOL_RUN environment variable selects the tool.
//
// Usage:
//
//	TOOL_RUN=hydrogeology_attributes_huek huek250
//	huek250 --huek huek250.shp --catchments catchments.geojson --id-field id --out ./out
//
// See --help for all available options.
package main

func main() {
	Execute()
}
