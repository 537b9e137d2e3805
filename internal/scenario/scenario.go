package scenario

import (
	"errors"
	"fmt"

	"github.com/dshills/mediator/internal/event/topic"
	"github.com/dshills/mediator/internal/reduce"
)

// Value kinds.
const (
	KindStatic  = "static"
	KindDynamic = "dynamic"
)

// ReducerLua selects a Lua script as a dynamic value's reducer.
const ReducerLua = "lua"

// Scenario declares values, the keys to watch and a list of steps.
type Scenario struct {
	Name        string      `toml:"name" yaml:"name"`
	Description string      `toml:"description" yaml:"description"`
	Values      []ValueSpec `toml:"values" yaml:"values"`
	Watch       []WatchSpec `toml:"watch" yaml:"watch"`
	Steps       []Step      `toml:"steps" yaml:"steps"`
}

// ValueSpec declares one value.
type ValueSpec struct {
	Name string `toml:"name" yaml:"name"`

	// Kind is static (the default) or dynamic.
	Kind string `toml:"kind" yaml:"kind"`

	// Value is the initial data of a static value.
	Value float64 `toml:"value" yaml:"value"`

	// Reducer names a built-in reducer or "lua"; dynamic only.
	Reducer string `toml:"reducer" yaml:"reducer"`

	// Seed overrides the reducer's seed; dynamic only.
	Seed *float64 `toml:"seed" yaml:"seed"`

	// Script is the Lua source defining reduce(acc, v).
	Script string `toml:"script" yaml:"script"`

	// Publish lists extra topics the value publishes under at creation.
	Publish []string `toml:"publish" yaml:"publish"`

	// Subscribe lists dependency keys subscribed at creation; dynamic only.
	Subscribe []string `toml:"subscribe" yaml:"subscribe"`
}

// WatchSpec selects topics whose data is reported on every notification.
type WatchSpec struct {
	Key string `toml:"key" yaml:"key"`
}

// Step is one action. Exactly one of Set, Subscribe or Publish is used.
type Step struct {
	// Set names a static value to assign Value to.
	Set   string  `toml:"set" yaml:"set"`
	Value float64 `toml:"value" yaml:"value"`

	Subscribe *SubscribeStep `toml:"subscribe" yaml:"subscribe"`
	Publish   *PublishStep   `toml:"publish" yaml:"publish"`
}

// SubscribeStep adds dependency keys to a dynamic value.
type SubscribeStep struct {
	Value string   `toml:"value" yaml:"value"`
	Keys  []string `toml:"keys" yaml:"keys"`
}

// PublishStep publishes a value under extra topics.
type PublishStep struct {
	Value  string   `toml:"value" yaml:"value"`
	Topics []string `toml:"topics" yaml:"topics"`
}

// kind returns the value kind with the default applied.
func (v ValueSpec) kind() string {
	if v.Kind == "" {
		return KindStatic
	}
	return v.Kind
}

// Validate checks names, kinds, reducers, keys and steps without running
// anything. Every problem found is reported.
func (s *Scenario) Validate() error {
	var errs []error
	kinds := make(map[string]string, len(s.Values))

	for _, v := range s.Values {
		if v.Name == "" || !topic.Topic(v.Name).IsValid() {
			errs = append(errs, fmt.Errorf("%w: bad name %q", ErrInvalidValue, v.Name))
			continue
		}
		if _, dup := kinds[v.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateValue, v.Name))
			continue
		}
		kinds[v.Name] = v.kind()

		switch v.kind() {
		case KindStatic:
			if v.Reducer != "" || v.Script != "" || v.Seed != nil || len(v.Subscribe) > 0 {
				errs = append(errs, fmt.Errorf("%w: static value %q has dynamic settings", ErrInvalidValue, v.Name))
			}
		case KindDynamic:
			if v.Reducer == ReducerLua {
				if v.Script == "" {
					errs = append(errs, fmt.Errorf("%w: %q uses the lua reducer without a script", ErrInvalidValue, v.Name))
				}
			} else if _, err := reduce.ByName(v.Reducer); err != nil {
				errs = append(errs, fmt.Errorf("%w: %q: %w", ErrInvalidValue, v.Name, err))
			}
			errs = append(errs, checkKeys(v.Subscribe)...)
		default:
			errs = append(errs, fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidValue, v.Name, v.Kind))
		}
		errs = append(errs, checkTopics(v.Publish)...)
	}

	for _, w := range s.Watch {
		errs = append(errs, checkKeys([]string{w.Key})...)
	}

	for i, step := range s.Steps {
		if err := step.validate(kinds); err != nil {
			errs = append(errs, &StepError{Index: i, Err: err})
		}
	}

	return errors.Join(errs...)
}

func (st Step) validate(kinds map[string]string) error {
	actions := 0
	if st.Set != "" {
		actions++
	}
	if st.Subscribe != nil {
		actions++
	}
	if st.Publish != nil {
		actions++
	}
	if actions != 1 {
		return fmt.Errorf("%w: want exactly one of set, subscribe or publish, got %d", ErrInvalidStep, actions)
	}

	switch {
	case st.Set != "":
		kind, ok := kinds[st.Set]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownValue, st.Set)
		}
		if kind != KindStatic {
			return fmt.Errorf("%w: cannot set %s value %q", ErrInvalidStep, kind, st.Set)
		}
	case st.Subscribe != nil:
		kind, ok := kinds[st.Subscribe.Value]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownValue, st.Subscribe.Value)
		}
		if kind != KindDynamic {
			return fmt.Errorf("%w: %s value %q cannot subscribe", ErrInvalidStep, kind, st.Subscribe.Value)
		}
		return errors.Join(checkKeys(st.Subscribe.Keys)...)
	case st.Publish != nil:
		if _, ok := kinds[st.Publish.Value]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownValue, st.Publish.Value)
		}
		return errors.Join(checkTopics(st.Publish.Topics)...)
	}
	return nil
}

func checkKeys(specs []string) []error {
	var errs []error
	for _, spec := range specs {
		if _, err := topic.Parse(spec); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func checkTopics(names []string) []error {
	var errs []error
	for _, name := range names {
		if !topic.Topic(name).IsValid() {
			errs = append(errs, fmt.Errorf("%w: bad topic %q", ErrInvalidValue, name))
		}
	}
	return errs
}
