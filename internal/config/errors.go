package config

import (
	"errors"
	"fmt"

	"github.com/dshills/mediator/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly requested config file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidFormat indicates an unknown log or output format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrTypeMismatch indicates a setting value of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates a setting value out of range.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// SettingError describes a setting that could not be applied.
type SettingError struct {
	// Path is the setting path, e.g. "log.level".
	Path string
	// Value is the rejected value.
	Value any
	// Err is one of the sentinel errors above, possibly wrapped.
	Err error
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s = %v: %v", e.Path, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *SettingError) Unwrap() error {
	return e.Err
}
