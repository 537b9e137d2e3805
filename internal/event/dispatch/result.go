package dispatch

import "time"

// Func is a callback run by an Executor.
type Func func() error

// Result is the outcome of one Execute call.
type Result struct {
	// Error is what the callback returned.
	Error error

	// Panicked is set when the callback panicked; PanicValue and
	// PanicStack describe the panic.
	Panicked   bool
	PanicValue any
	PanicStack []byte

	Duration time.Duration
}

// IsSuccess reports whether the callback returned nil without panicking.
func (r Result) IsSuccess() bool {
	return r.Error == nil && !r.Panicked
}

// IsError reports whether the callback returned an error.
func (r Result) IsError() bool {
	return r.Error != nil
}

// IsPanic reports whether the callback panicked.
func (r Result) IsPanic() bool {
	return r.Panicked
}

// PanicHandler is called with the target given to Execute, the panic value
// and the goroutine stack when a callback panics.
type PanicHandler func(target any, panicValue any, stack []byte)

func ignorePanic(any, any, []byte) {}
