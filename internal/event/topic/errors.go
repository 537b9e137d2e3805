package topic

import (
	"errors"
	"fmt"
)

// Sentinel errors for topic keys.
var (
	// ErrInvalidPattern is returned when a pattern expression cannot be compiled.
	ErrInvalidPattern = errors.New("invalid topic pattern")

	// ErrUnknownKeyKind reports a Key that is neither exact nor a pattern.
	// Only the zero Key can produce it.
	ErrUnknownKeyKind = errors.New("unknown topic key kind")
)

// InvalidPatternError describes a pattern rejected at construction time.
type InvalidPatternError struct {
	// Kind is the pattern syntax that was requested.
	Kind Kind

	// Expr is the rejected expression.
	Expr string

	// Err is the underlying compile error, if any.
	Err error
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s pattern %q: %v", e.Kind, e.Expr, e.Err)
	}
	return fmt.Sprintf("invalid %s pattern %q", e.Kind, e.Expr)
}

// Unwrap returns the underlying error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match InvalidPatternError with ErrInvalidPattern.
func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// UnknownKeyKindError is the panic value raised when a Key of unknown kind
// reaches matching code.
type UnknownKeyKindError struct {
	Kind Kind
}

// Error implements the error interface.
func (e *UnknownKeyKindError) Error() string {
	return fmt.Sprintf("unknown topic key kind %d", uint8(e.Kind))
}

// Is allows errors.Is to match UnknownKeyKindError with ErrUnknownKeyKind.
func (e *UnknownKeyKindError) Is(target error) bool {
	return target == ErrUnknownKeyKind
}
