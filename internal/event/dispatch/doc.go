// Package dispatch runs callbacks with panic recovery.
//
// The mediator uses an Executor for its diagnostic observers, whose
// failures must never interrupt a publish or subscribe. Data-flow callbacks
// (publishers and subscribers) are deliberately not run through it:
// their failures propagate to the caller.
//
// # Usage
//
//	exec := dispatch.NewExecutor(
//	    dispatch.WithPanicHandler(func(target any, v any, stack []byte) {
//	        log.Printf("panic in %v: %v\n%s", target, v, stack)
//	    }),
//	)
//	result := exec.Execute("observer-1", func() error {
//	    return observe()
//	})
//	if !result.IsSuccess() {
//	    // inspect result.Error or result.PanicValue
//	}
package dispatch
