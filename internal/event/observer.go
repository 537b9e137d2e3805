package event

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dshills/mediator/internal/event/dispatch"
	"github.com/dshills/mediator/internal/event/topic"
)

// EventKind is the type of registry mutation reported to observers.
type EventKind uint8

const (
	// PublisherAdded is reported after a publisher is appended to a topic.
	PublisherAdded EventKind = iota + 1

	// SubscriberAdded is reported after a subscriber is appended to a key,
	// before the replay.
	SubscriberAdded

	// TopicPublished is reported when a topic's subscribers are about to
	// be notified.
	TopicPublished
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case PublisherAdded:
		return "publisher-added"
	case SubscriberAdded:
		return "subscriber-added"
	case TopicPublished:
		return "topic-published"
	default:
		return "unknown"
	}
}

// Event describes a registry mutation.
type Event struct {
	Kind EventKind

	// Topic is set for PublisherAdded and TopicPublished.
	Topic topic.Topic

	// Key is set for SubscriberAdded.
	Key topic.Key
}

// String returns a compact description such as "publisher-added a1".
func (e Event) String() string {
	if e.Kind == SubscriberAdded {
		return fmt.Sprintf("%s %s", e.Kind, e.Key)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Topic)
}

// Observer receives registry mutations for diagnostics. Observers are not
// part of the data flow: an error or panic from Observe is isolated and
// logged, and delivery continues with the next observer.
type Observer interface {
	Observe(ev Event) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event) error

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) error {
	return f(ev)
}

// ObserverID identifies a registered observer.
type ObserverID uuid.UUID

// String returns the canonical UUID form.
func (id ObserverID) String() string {
	return uuid.UUID(id).String()
}

type observerEntry struct {
	id       ObserverID
	observer Observer
}

// observerSet is an ordered, thread-safe list of observers.
type observerSet struct {
	mu      sync.RWMutex
	entries []observerEntry
	exec    *dispatch.Executor
}

func newObserverSet(panicHandler dispatch.PanicHandler) *observerSet {
	return &observerSet{
		exec: dispatch.NewExecutor(dispatch.WithPanicHandler(panicHandler)),
	}
}

func (s *observerSet) add(o Observer) ObserverID {
	id := ObserverID(uuid.New())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, observerEntry{id: id, observer: o})
	return id
}

func (s *observerSet) remove(id ObserverID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *observerSet) snapshot() []observerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return nil
	}
	result := make([]observerEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

func (s *observerSet) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// broadcast delivers ev to every observer in registration order.
// Each failure becomes an *ObserverError; all of them are combined into
// the returned error.
func (s *observerSet) broadcast(ev Event) error {
	var errs error
	for _, e := range s.snapshot() {
		o := e.observer
		result := s.exec.Execute(e.id, func() error {
			return o.Observe(ev)
		})
		if result.IsSuccess() {
			continue
		}

		errs = multierr.Append(errs, &ObserverError{
			ObserverID: e.id,
			Event:      ev,
			Err:        result.Error,
			Panicked:   result.Panicked,
			PanicValue: result.PanicValue,
			Stack:      result.PanicStack,
		})
	}
	return errs
}
