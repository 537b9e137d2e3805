package value

import (
	"sync"

	"github.com/dshills/mediator/internal/event"
	"github.com/dshills/mediator/internal/event/topic"
)

// Value is named data published on a mediator.
type Value[T any] interface {
	// Name returns the topic the value was registered under.
	Name() topic.Topic

	// Current returns the value's data now.
	Current() T
}

// Publisher returns a publisher yielding v's current data whatever the
// topic it is queried under.
func Publisher[T any](v Value[T]) event.Publisher[T] {
	return func(topic.Topic) T {
		return v.Current()
	}
}

// Register publishes v on m under its own name. Values built with this
// package's constructors are already registered.
func Register[T any](m *event.Mediator[T], v Value[T]) {
	m.Publish(Publisher(v), v.Name())
}

// publication tracks the topics a value publishes under.
type publication[T any] struct {
	m    *event.Mediator[T]
	name topic.Topic

	mu     sync.RWMutex
	topics []topic.Topic
}

func (p *publication[T]) init(m *event.Mediator[T], name topic.Topic) {
	if m == nil {
		panic("value: nil mediator")
	}
	p.m = m
	p.name = name
	p.topics = []topic.Topic{name}
}

// Name returns the value's own topic.
func (p *publication[T]) Name() topic.Topic {
	return p.name
}

// Topics returns every topic the value publishes under, its own name
// first, then additional topics in publication order.
func (p *publication[T]) Topics() []topic.Topic {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]topic.Topic, len(p.topics))
	copy(result, p.topics)
	return result
}

// publish records names and registers v under them.
func (p *publication[T]) publish(v Value[T], names []topic.Topic) {
	p.mu.Lock()
	p.topics = append(p.topics, names...)
	p.mu.Unlock()

	p.m.Publish(Publisher(v), names...)
}

// notify tells the subscribers of every published topic that the value
// changed.
func (p *publication[T]) notify() {
	p.m.NotifySubscribers(p.Topics()...)
}
