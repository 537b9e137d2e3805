package scenario

import (
	"errors"
	"fmt"
)

// Errors for scenario files.
var (
	// ErrUnknownValue is returned when a step or key names a missing value.
	ErrUnknownValue = errors.New("unknown value")

	// ErrDuplicateValue is returned when two values share a name.
	ErrDuplicateValue = errors.New("duplicate value")

	// ErrInvalidValue is returned for a value with a bad kind or reducer.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidStep is returned for a step that is not exactly one action.
	ErrInvalidStep = errors.New("invalid step")

	// ErrUnknownFormat is returned for a file that is neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown scenario format")

	// ErrUnknownDemo is returned by Demo for an unknown name.
	ErrUnknownDemo = errors.New("unknown demo")
)

// ParseError describes a scenario file that could not be decoded.
type ParseError struct {
	// Path is the file, or the demo name for embedded scenarios.
	Path string
	// Err is the decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing scenario %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StepError locates a failure in the step list.
type StepError struct {
	// Index is the zero-based step index.
	Index int
	// Err is the failure.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
