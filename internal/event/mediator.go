package event

import (
	"errors"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/dshills/mediator/internal/event/topic"
)

// Publisher produces the current data of a topic.
type Publisher[T any] func(name topic.Topic) T

// Subscriber is notified with the concrete topic whose data changed.
type Subscriber func(name topic.Topic)

// Mediator decouples publishers of named data from subscribers.
//
// Publishers are registered under exact topic names. Subscribers are
// registered under keys, which are exact names or patterns; patterns are
// resolved against the published names on every call, never cached.
//
// All operations are synchronous. Subscriber and publisher callbacks run
// on the caller's goroutine and may call back into the mediator. A panic
// in a subscriber or publisher propagates to the caller, aborting the
// notification cascade at that point.
//
// The registry lock is only held while the registry itself is read or
// written, so a Mediator may also be shared between goroutines.
type Mediator[T any] struct {
	reg       *registry[T]
	observers *observerSet
	logger    *slog.Logger
}

// New creates an empty mediator.
func New[T any](opts ...Option) *Mediator[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Mediator[T]{
		reg:       newRegistry[T](),
		observers: newObserverSet(cfg.panicHandler),
		logger:    cfg.logger,
	}
	for _, o := range cfg.observers {
		m.observers.add(o)
	}
	return m
}

// Publish registers p under each name in order. After each registration
// the subscribers of that name are notified, so a name's subscribers have
// already observed p when the next name is processed.
//
// Publish panics if p is nil.
func (m *Mediator[T]) Publish(p Publisher[T], names ...topic.Topic) {
	if p == nil {
		panic("event: Publish called with nil publisher")
	}

	for _, name := range names {
		if m.reg.addPublisher(name, p) {
			m.logger.Debug("topic published for the first time", "topic", name)
		}
		m.notifyObservers(Event{Kind: PublisherAdded, Topic: name})
		m.NotifySubscribers(name)
	}
}

// Subscribe registers s under each key in order and replays current data
// to it: an exact key replays once if its topic has at least one
// publisher, a pattern key replays once for every published name it
// matches, in first-publication order.
//
// Subscribe panics if s is nil or a key is the zero Key.
func (m *Mediator[T]) Subscribe(s Subscriber, keys ...topic.Key) {
	if s == nil {
		panic("event: Subscribe called with nil subscriber")
	}
	for _, key := range keys {
		if key.IsZero() {
			panic(&topic.UnknownKeyKindError{Kind: key.Kind()})
		}
	}

	for _, key := range keys {
		if m.reg.addSubscriber(key, s) {
			m.logger.Debug("first subscriber for key", "key", key.String(), "kind", key.Kind().String())
		}
		m.notifyObservers(Event{Kind: SubscriberAdded, Key: key})
		m.replay(s, key)
	}
}

// replay invokes s once per currently matching published topic.
func (m *Mediator[T]) replay(s Subscriber, key topic.Key) {
	if key.IsExact() {
		if m.reg.publisherCount(key.Name()) > 0 {
			s(key.Name())
		}
		return
	}

	for _, name := range m.reg.resolve(key) {
		s(name)
	}
}

// NotifySubscribers notifies, for each name in order, every subscriber of
// the exact key first and then the subscribers of each matching pattern in
// the order the patterns were first subscribed.
//
// The subscriber lists are snapshotted when each name's round starts:
// subscribers added during the round are not called in it.
func (m *Mediator[T]) NotifySubscribers(names ...topic.Topic) {
	for _, name := range names {
		m.notifyObservers(Event{Kind: TopicPublished, Topic: name})
		for _, s := range m.reg.match(name) {
			s(name)
		}
	}
}

// PublishedData returns the current data of every publisher denoted by
// keys. For each key in order, each resolved topic contributes one value
// per publisher in registration order. Keys that overlap contribute the
// same publisher more than once. Topics without publishers contribute
// nothing.
//
// Patterns are resolved by scanning every published name, so the cost is
// linear in the number of distinct topics.
func (m *Mediator[T]) PublishedData(keys ...topic.Key) []T {
	var data []T
	for _, key := range keys {
		for _, name := range m.reg.resolve(key) {
			for _, p := range m.reg.publishersOf(name) {
				data = append(data, p(name))
			}
		}
	}
	return data
}

// Resolve returns the topics a key currently denotes.
func (m *Mediator[T]) Resolve(key topic.Key) []topic.Topic {
	return m.reg.resolve(key)
}

// Topics returns every published topic in first-publication order.
func (m *Mediator[T]) Topics() []topic.Topic {
	return m.reg.topics()
}

// Keys returns every key with at least one subscriber.
func (m *Mediator[T]) Keys() []topic.Key {
	return m.reg.keys()
}

// PublisherCount returns the number of publishers registered under name.
func (m *Mediator[T]) PublisherCount(name topic.Topic) int {
	return m.reg.publisherCount(name)
}

// SubscriberCount returns the number of subscribers registered under key.
func (m *Mediator[T]) SubscriberCount(key topic.Key) int {
	return len(m.reg.subscribersOf(key))
}

// AddObserver registers a diagnostics observer and returns its ID.
// Observers are called synchronously, in registration order.
func (m *Mediator[T]) AddObserver(o Observer) ObserverID {
	if o == nil {
		panic("event: AddObserver called with nil observer")
	}
	return m.observers.add(o)
}

// RemoveObserver unregisters an observer.
func (m *Mediator[T]) RemoveObserver(id ObserverID) error {
	if !m.observers.remove(id) {
		return ErrObserverNotFound
	}
	return nil
}

// ObserverCount returns the number of registered observers.
func (m *Mediator[T]) ObserverCount() int {
	return m.observers.len()
}

// ObserverFailures returns how many observer calls have failed.
func (m *Mediator[T]) ObserverFailures() uint64 {
	return m.observers.exec.Stats().Failures()
}

// notifyObservers broadcasts ev and logs every failure.
func (m *Mediator[T]) notifyObservers(ev Event) {
	err := m.observers.broadcast(ev)
	if err == nil {
		return
	}

	for _, e := range multierr.Errors(err) {
		var oe *ObserverError
		if errors.As(e, &oe) {
			m.logger.Warn("observer failed",
				"observer", oe.ObserverID.String(),
				"event", ev.String(),
				"panicked", oe.Panicked,
				"error", e,
			)
			continue
		}
		m.logger.Warn("observer failed", "event", ev.String(), "error", e)
	}
}
