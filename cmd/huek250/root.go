package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/huek250/internal/config"
)

// NewRootCmd creates the root command. Without a subcommand it runs the
// tool selected by TOOL_RUN.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "huek250",
		Short: "Hydrogeology attributes of catchments from the HÜK250",
		Long: `huek250 clips the HÜK250 hydrogeological overview map to every catchment
and reports the area share of each category of six attribute fields:
permeability, aquifer type, cavity type, consolidation, rock type and
geochemical rock type. Waterbody and no data shares are reported once.

Configuration is layered, later sources win:
  1. built-in defaults
  2. YAML configuration file (--config, else $XDG_CONFIG_HOME/huek250/config.yaml)
  3. parameter file (--inputs, default /in/inputs.json)
  4. TOOL_RUN environment variable and command line flags

Examples:
  # Container entrypoint
  TOOL_RUN=hydrogeology_attributes_huek huek250

  # Local run without a parameter file
  TOOL_RUN=hydrogeology_attributes_huek huek250 \
    --huek huek250_fl.shp --catchments catchments.geojson --id-field id --out ./out`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runToolCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: $XDG_CONFIG_HOME/huek250/config.yaml)")
	cmd.PersistentFlags().String("vocabulary", "",
		"Vocabulary YAML file (default: built-in "+defaultVocabularyVersion()+")")

	addToolFlags(cmd)

	cmd.AddCommand(NewVocabularyCmd())
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfigFile applies the configuration file to cfg. A missing file is
// only an error when the user named it explicitly.
func loadConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	path := config.FindConfigFile(explicit)
	switch {
	case path != "":
		if err := cfg.LoadFile(path); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case explicit != "":
		return fmt.Errorf("configuration file not found: %s", explicit)
	}
	return nil
}
