package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/mediator/internal/event"
	"github.com/dshills/mediator/internal/event/topic"
	"github.com/dshills/mediator/internal/reduce"
	"github.com/dshills/mediator/internal/value"
)

// Runner executes scenarios on a fresh mediator each run.
type Runner struct {
	logger    *slog.Logger
	parser    *topic.Parser
	observers []event.Observer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger for the runner and its mediators.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithParser sets the key parser, sharing its cache across runs.
func WithParser(p *topic.Parser) RunnerOption {
	return func(r *Runner) {
		if p != nil {
			r.parser = p
		}
	}
}

// WithObserver attaches an observer to every mediator the runner creates.
func WithObserver(o event.Observer) RunnerOption {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: slog.Default(),
		parser: topic.NewParser(topic.DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// run holds the state of one scenario execution.
type run struct {
	*Runner
	m       *event.Mediator[float64]
	statics map[string]*value.Static[float64]
	dynamic map[string]*value.Aggregate[float64]
	closers []func() error
	report  *Report
}

// Run executes s: it creates the values, reports the watched data, wires
// the watchers, performs every step and reports the watched data again.
// A Lua reducer failure aborts the run and is returned as an error.
func (r *Runner) Run(ctx context.Context, s *Scenario) (report *Report, err error) {
	opts := []event.Option{event.WithLogger(r.logger)}
	for _, o := range r.observers {
		opts = append(opts, event.WithObserver(o))
	}

	st := &run{
		Runner:  r,
		m:       event.New[float64](opts...),
		statics: make(map[string]*value.Static[float64]),
		dynamic: make(map[string]*value.Aggregate[float64]),
		report:  &Report{Scenario: s.Name, Description: s.Description},
	}
	defer func() {
		for _, c := range st.closers {
			err = errors.Join(err, c())
		}
	}()
	defer func() {
		if rec := recover(); rec != nil {
			var se *reduce.ScriptError
			e, ok := rec.(error)
			if !ok || !errors.As(e, &se) {
				panic(rec)
			}
			report, err = nil, fmt.Errorf("scenario %s: %w", s.Name, e)
		}
	}()

	r.logger.Debug("running scenario", "scenario", s.Name, "values", len(s.Values), "steps", len(s.Steps))

	for _, spec := range s.Values {
		if err := st.create(spec); err != nil {
			return nil, err
		}
	}

	watch := make([]topic.Key, 0, len(s.Watch))
	for _, w := range s.Watch {
		key, err := r.parser.Parse(w.Key)
		if err != nil {
			return nil, err
		}
		watch = append(watch, key)
	}

	st.snapshot(StageInitial, watch)
	for _, key := range watch {
		st.m.Subscribe(st.observe, key)
	}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := st.apply(step); err != nil {
			return nil, &StepError{Index: i, Err: err}
		}
	}

	st.snapshot(StageFinal, watch)
	return st.report, nil
}

// create builds, registers and wires one value.
func (st *run) create(spec ValueSpec) error {
	name := topic.Topic(spec.Name)

	switch spec.kind() {
	case KindStatic:
		s := value.NewStatic(st.m, name, spec.Value)
		st.statics[spec.Name] = s
		s.Publish(topic.Names(spec.Publish...)...)
		return nil

	case KindDynamic:
		fn, seed, err := st.reducer(spec)
		if err != nil {
			return err
		}
		a := value.NewAggregate(st.m, name, seed, fn)
		st.dynamic[spec.Name] = a
		a.Publish(topic.Names(spec.Publish...)...)

		keys, err := st.parser.ParseAll(spec.Subscribe...)
		if err != nil {
			return err
		}
		a.Subscribe(keys...)
		return nil

	default:
		return fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidValue, spec.Name, spec.Kind)
	}
}

// reducer resolves a dynamic value's reducer and seed.
func (st *run) reducer(spec ValueSpec) (reduce.Func[float64], float64, error) {
	var (
		fn   reduce.Func[float64]
		seed float64
	)

	if spec.Reducer == ReducerLua {
		lr, err := reduce.NewLua(spec.Script, reduce.WithScriptName(spec.Name))
		if err != nil {
			return nil, 0, err
		}
		st.closers = append(st.closers, lr.Close)
		fn = lr.Func()
	} else {
		b, err := reduce.ByName(spec.Reducer)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %q: %w", ErrInvalidValue, spec.Name, err)
		}
		fn, seed = b.Func, b.Seed
	}

	if spec.Seed != nil {
		seed = *spec.Seed
	}
	return fn, seed, nil
}

// apply performs one step.
func (st *run) apply(step Step) error {
	switch {
	case step.Set != "" && step.Subscribe == nil && step.Publish == nil:
		s, ok := st.statics[step.Set]
		if !ok {
			return fmt.Errorf("%w: static %q", ErrUnknownValue, step.Set)
		}
		st.logger.Debug("set", "value", step.Set, "to", step.Value)
		s.Set(step.Value)

	case step.Subscribe != nil && step.Set == "" && step.Publish == nil:
		a, ok := st.dynamic[step.Subscribe.Value]
		if !ok {
			return fmt.Errorf("%w: dynamic %q", ErrUnknownValue, step.Subscribe.Value)
		}
		keys, err := st.parser.ParseAll(step.Subscribe.Keys...)
		if err != nil {
			return err
		}
		st.logger.Debug("subscribe", "value", step.Subscribe.Value, "keys", step.Subscribe.Keys)
		a.Subscribe(keys...)

	case step.Publish != nil && step.Set == "" && step.Subscribe == nil:
		names := topic.Names(step.Publish.Topics...)
		st.logger.Debug("publish", "value", step.Publish.Value, "topics", step.Publish.Topics)
		if s, ok := st.statics[step.Publish.Value]; ok {
			s.Publish(names...)
		} else if a, ok := st.dynamic[step.Publish.Value]; ok {
			a.Publish(names...)
		} else {
			return fmt.Errorf("%w: %q", ErrUnknownValue, step.Publish.Value)
		}

	default:
		return ErrInvalidStep
	}
	return nil
}

// observe reports the data of a notified topic.
func (st *run) observe(name topic.Topic) {
	for _, v := range st.m.PublishedData(topic.Exact(name)) {
		st.report.add(StageNotification, name, v)
	}
}

// snapshot reports the data of every topic the watch keys resolve to.
func (st *run) snapshot(stage Stage, watch []topic.Key) {
	for _, key := range watch {
		for _, name := range st.m.Resolve(key) {
			for _, v := range st.m.PublishedData(topic.Exact(name)) {
				st.report.add(stage, name, v)
			}
		}
	}
}
