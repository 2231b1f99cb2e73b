package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInputsNotFound is returned when the parameter file does not exist.
	ErrInputsNotFound = errors.New("parameter file not found")

	// ErrNoToolRun is returned when the TOOL_RUN environment variable is
	// empty or unset.
	ErrNoToolRun = errors.New("no tool name set in the TOOL_RUN environment variable")
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// UnknownToolError is returned when TOOL_RUN names a tool this binary does
// not provide.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Either no TOOL_RUN environment variable available, or '%s' is not valid.", e.Tool)
}
