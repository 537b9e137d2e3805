package reduce

import (
	"errors"
	"fmt"
)

// Errors for reducers.
var (
	// ErrUnknownReducer is returned by ByName for an unregistered name.
	ErrUnknownReducer = errors.New("unknown reducer")

	// ErrScript matches every error raised by a Lua reducer script.
	ErrScript = errors.New("reducer script error")

	// ErrReducerClosed is returned when calling a closed Lua reducer.
	ErrReducerClosed = errors.New("lua reducer is closed")
)

// ScriptError describes a Lua reducer failure: a script that does not
// load, lacks a reduce function, raises an error or returns a non-number.
type ScriptError struct {
	// Name identifies the script, usually the value it reduces for.
	Name string

	// Err is the underlying Lua error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("reducer script: %v", e.Err)
	}
	return fmt.Sprintf("reducer script %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match ScriptError with ErrScript.
func (e *ScriptError) Is(target error) bool {
	return target == ErrScript
}
