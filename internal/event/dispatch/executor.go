package dispatch

import (
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Executor runs callbacks in the caller's goroutine, recovering panics
// and timing each call. It is safe for concurrent use.
type Executor struct {
	panicHandler PanicHandler

	executed atomic.Uint64
	failed   atomic.Uint64
	panicked atomic.Uint64
	elapsed  atomic.Int64
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPanicHandler sets the function told about recovered panics.
// A nil handler is ignored.
func WithPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		if h != nil {
			e.panicHandler = h
		}
	}
}

// NewExecutor creates an executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{panicHandler: ignorePanic}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs fn. target identifies the callback to the panic handler.
func (e *Executor) Execute(target any, fn Func) (result Result) {
	start := time.Now()
	e.executed.Add(1)

	defer func() {
		result.Duration = time.Since(start)
		e.elapsed.Add(int64(result.Duration))

		rec := recover()
		if rec == nil {
			return
		}
		result.Panicked = true
		result.PanicValue = rec
		result.PanicStack = debug.Stack()
		e.panicked.Add(1)
		e.reportPanic(target, rec, result.PanicStack)
	}()

	if result.Error = fn(); result.Error != nil {
		e.failed.Add(1)
	}
	return result
}

// reportPanic calls the panic handler, swallowing a panic it raises.
func (e *Executor) reportPanic(target, v any, stack []byte) {
	defer func() { _ = recover() }()
	e.panicHandler(target, v, stack)
}

// Stats counts the calls made so far. Fields are read one at a time and
// may be mutually inconsistent while calls are in flight.
type Stats struct {
	Executed uint64
	Failed   uint64
	Panicked uint64
	Elapsed  time.Duration
}

// Failures is the number of calls that returned an error or panicked.
func (s Stats) Failures() uint64 {
	return s.Failed + s.Panicked
}

// Stats returns the executor's counters.
func (e *Executor) Stats() Stats {
	return Stats{
		Executed: e.executed.Load(),
		Failed:   e.failed.Load(),
		Panicked: e.panicked.Load(),
		Elapsed:  time.Duration(e.elapsed.Load()),
	}
}
