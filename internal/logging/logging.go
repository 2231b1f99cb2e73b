// Package logging builds the zap logger of the huek250 command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Verbose lowers the level from info to debug.
	Verbose bool

	// OutputPaths defaults to stderr.
	OutputPaths []string

	// RunID is attached to every entry as "run_id" when set.
	RunID string
}

// New returns a production (JSON) logger.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if len(opts.OutputPaths) > 0 {
		config.OutputPaths = opts.OutputPaths
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if opts.RunID != "" {
		logger = logger.With(zap.String("run_id", opts.RunID))
	}
	return logger, nil
}
