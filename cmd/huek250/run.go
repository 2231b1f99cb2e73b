package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beetlebugorg/huek250/internal/config"
	"github.com/beetlebugorg/huek250/internal/logging"
	"github.com/beetlebugorg/huek250/internal/output"
	"github.com/beetlebugorg/huek250/pkg/huek"
)

// addToolFlags registers the flags of a tool run. They override the
// configuration file and the parameter file.
func addToolFlags(cmd *cobra.Command) {
	cmd.Flags().String("tool", "", "Tool to run (default: $TOOL_RUN)")
	cmd.Flags().String("inputs", config.DefaultInputsFile, "Parameter file")
	cmd.Flags().StringP("out", "o", config.DefaultOutputDir, "Output directory")

	cmd.Flags().String("huek", "", "HÜK250 base map (.shp or .geojson)")
	cmd.Flags().String("catchments", "", "Catchment polygons (.shp or .geojson)")
	cmd.Flags().String("id-field", "", "Catchment attribute holding the catchment ID")
	cmd.Flags().Int("huek-epsg", 0, "Override the CRS of the base map")
	cmd.Flags().Int("catchments-epsg", 0, "Override the CRS of the catchments")

	cmd.Flags().String("index-name", config.DefaultIndexName, "Header of the catchment ID column")
	cmd.Flags().Float64("tolerance", huek.DefaultTolerance, "Allowed deviation of each attribute's sum from 100")
	cmd.Flags().String("degenerate", string(huek.DegenerateFail),
		"Catchments outside the base map: fail or exclude")
	cmd.Flags().Bool("strict-vocabulary", false, "Fail on base map labels unknown to the vocabulary")
	cmd.Flags().String("permissions", config.DefaultPermissions,
		"Octal mode applied to the output directory tree, empty to skip")

	cmd.Flags().String("markdown", "", "Also write a Markdown summary to this file")
	cmd.Flags().String("sqlite", "", "Also append the results to this SQLite database")
}

// runToolCmd executes a tool run.
func runToolCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if err := loadConfigFile(cmd, cfg); err != nil {
		return err
	}

	cfg.ApplyEnv(os.LookupEnv)
	if cmd.Flags().Changed("tool") {
		tool, _ := cmd.Flags().GetString("tool")
		cfg.SetTool(tool)
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir, _ = cmd.Flags().GetString("out")
	}

	if err := cfg.CheckTool(); err != nil {
		var unknown *config.UnknownToolError
		if !errors.As(err, &unknown) {
			return err
		}
		path, werr := output.WriteErrorLog(cfg.OutputDir, time.Now(), unknown.Error())
		if werr != nil {
			return fmt.Errorf("%w (writing error log: %v)", err, werr)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s, see %s\n", unknown.Error(), path)
		return nil
	}

	if err := applyInputs(cmd, cfg); err != nil {
		return err
	}
	if err := applyToolFlags(cmd, cfg); err != nil {
		return err
	}
	cfg.Verbose = cfg.Verbose || getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	run := output.NewRun(time.Now(), "")
	logger, err := logging.New(logging.Options{Verbose: cfg.Verbose, RunID: run.ID})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runTool(ctx, cfg, run, logger)
}

// applyInputs reads the parameter file. A missing file is only an error
// when --inputs was given.
func applyInputs(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("inputs") {
		cfg.InputsFile, _ = cmd.Flags().GetString("inputs")
	}

	inputs, err := config.ReadInputs(cfg.InputsFile)
	switch {
	case errors.Is(err, config.ErrInputsNotFound) && !cmd.Flags().Changed("inputs"):
		return nil
	case err != nil:
		return fmt.Errorf("failed to read parameters %s: %w", cfg.InputsFile, err)
	}
	return cfg.ApplyInputs(inputs, cfg.ToolRun)
}

// applyToolFlags copies every flag the user set into cfg.
func applyToolFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	stringFlags := map[string]*string{
		"huek":        &cfg.BasePath,
		"catchments":  &cfg.CatchmentsPath,
		"id-field":    &cfg.IDField,
		"index-name":  &cfg.IndexName,
		"degenerate":  &cfg.Degenerate,
		"permissions": &cfg.Permissions,
		"markdown":    &cfg.MarkdownFile,
		"sqlite":      &cfg.SQLiteFile,
		"vocabulary":  &cfg.VocabularyFile,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	intFlags := map[string]*int{
		"huek-epsg":       &cfg.BaseEPSG,
		"catchments-epsg": &cfg.CatchmentsEPSG,
	}
	for name, dst := range intFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if flags.Changed("tolerance") {
		v, err := flags.GetFloat64("tolerance")
		if err != nil {
			return err
		}
		cfg.Tolerance = v
	}
	if flags.Changed("strict-vocabulary") {
		v, err := flags.GetBool("strict-vocabulary")
		if err != nil {
			return err
		}
		cfg.StrictVocabulary = v
	}
	return nil
}

// loadVocabulary returns the configured vocabulary or the built-in one.
func loadVocabulary(path string) (*huek.Vocabulary, error) {
	if path == "" {
		return huek.DefaultVocabulary(), nil
	}
	return huek.LoadVocabulary(path)
}

// runTool loads both layers, computes the table and writes all outputs.
func runTool(ctx context.Context, cfg *config.Config, run output.Run, logger *zap.Logger) error {
	vocab, err := loadVocabulary(cfg.VocabularyFile)
	if err != nil {
		return err
	}
	run.VocabularyVersion = vocab.Version
	run.BasePath = cfg.BasePath
	run.CatchmentsPath = cfg.CatchmentsPath

	logger.Info("loading layers",
		zap.String("huek", cfg.BasePath),
		zap.String("catchments", cfg.CatchmentsPath),
		zap.String("vocabulary", vocab.Version))

	base, catchments, err := huek.LoadLayersWithOptions(ctx, huek.NewReader(), cfg.BasePath, cfg.CatchmentsPath, cfg.LoadOptions())
	if err != nil {
		return err
	}
	logger.Debug("layers loaded",
		zap.Int("base_features", base.FeatureCount()),
		zap.Stringer("base_crs", base.CRS()),
		zap.Int("catchments", catchments.FeatureCount()),
		zap.Stringer("catchments_crs", catchments.CRS()))

	if err := auditVocabulary(vocab, base, cfg.StrictVocabulary, logger); err != nil {
		return err
	}

	opts, err := cfg.AggregateOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger
	opts.Progress = func(done, total int) {
		logger.Debug("progress", zap.Int("done", done), zap.Int("total", total))
	}

	agg, err := huek.NewAggregator(vocab, opts)
	if err != nil {
		return err
	}
	table, err := agg.Aggregate(ctx, base, catchments, cfg.IDField)
	if err != nil {
		return err
	}

	path, err := output.WriteCSVFile(cfg.OutputDir, table, opts.Decimals)
	if err != nil {
		return err
	}
	logger.Info("table written",
		zap.String("path", path),
		zap.Int("rows", table.Len()),
		zap.Strings("excluded", table.Excluded))

	if cfg.MarkdownFile != "" {
		if err := output.WriteMarkdownFile(cfg.MarkdownFile, run, table); err != nil {
			return err
		}
		logger.Info("summary written", zap.String("path", cfg.MarkdownFile))
	}
	if cfg.SQLiteFile != "" {
		if err := output.SaveSQLite(ctx, cfg.SQLiteFile, run, table); err != nil {
			return err
		}
		logger.Info("results saved", zap.String("database", cfg.SQLiteFile))
	}

	mode, ok, err := cfg.FileMode()
	if err != nil {
		return err
	}
	if ok {
		if err := output.ChmodTree(cfg.OutputDir, mode); err != nil {
			return fmt.Errorf("set permissions on %s: %w", cfg.OutputDir, err)
		}
	}
	return nil
}

// auditVocabulary warns about base map labels the vocabulary does not
// know, or fails when strict is set.
func auditVocabulary(vocab *huek.Vocabulary, base *huek.Layer, strict bool, logger *zap.Logger) error {
	unknown, err := vocab.Audit(base)
	if err != nil {
		return err
	}
	if len(unknown) == 0 {
		return nil
	}
	if strict {
		return &huek.UnknownLabelsError{Version: vocab.Version, Labels: unknown}
	}
	for _, u := range unknown {
		logger.Warn("label not in vocabulary",
			zap.String("field", u.Field),
			zap.String("label", u.Label),
			zap.Int("features", u.Count))
	}
	return nil
}
