package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the mediator.
var (
	// ErrObserverFailure matches every error produced by a failing observer.
	ErrObserverFailure = errors.New("observer failure")

	// ErrObserverNotFound is returned when removing an unknown observer.
	ErrObserverNotFound = errors.New("observer not found")
)

// ObserverError records one observer failing on one event.
// Observer failures are logged and counted, never returned to the caller
// of Publish, Subscribe or NotifySubscribers.
type ObserverError struct {
	// ObserverID identifies the failing observer.
	ObserverID ObserverID

	// Event is the event being delivered.
	Event Event

	// Err is the error returned by the observer, if it returned one.
	Err error

	// Panicked is true if the observer panicked.
	Panicked bool

	// PanicValue is the value passed to panic().
	PanicValue any

	// Stack is the stack trace at the time of the panic.
	Stack []byte
}

// Error implements the error interface.
func (e *ObserverError) Error() string {
	if e.Panicked {
		return fmt.Sprintf("observer %s panicked on %s: %v", e.ObserverID, e.Event, e.PanicValue)
	}
	return fmt.Sprintf("observer %s failed on %s: %v", e.ObserverID, e.Event, e.Err)
}

// Unwrap returns the underlying error.
func (e *ObserverError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match ObserverError with ErrObserverFailure.
func (e *ObserverError) Is(target error) bool {
	return target == ErrObserverFailure
}
