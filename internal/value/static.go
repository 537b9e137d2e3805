package value

import (
	"sync"

	"github.com/dshills/mediator/internal/event"
	"github.com/dshills/mediator/internal/event/topic"
)

// Static is a leaf value set directly by its owner.
type Static[T any] struct {
	publication[T]

	vmu   sync.RWMutex
	value T
}

// NewStatic creates a static value and registers it on m under name.
func NewStatic[T any](m *event.Mediator[T], name topic.Topic, initial T) *Static[T] {
	s := &Static[T]{value: initial}
	s.init(m, name)
	Register[T](m, s)
	return s
}

// Current returns the stored value.
func (s *Static[T]) Current() T {
	s.vmu.RLock()
	defer s.vmu.RUnlock()

	return s.value
}

// Set stores v and notifies the subscribers of every topic the value
// publishes under, even if v equals the previous value.
func (s *Static[T]) Set(v T) {
	s.vmu.Lock()
	s.value = v
	s.vmu.Unlock()

	s.notify()
}

// Publish additionally publishes the value under names.
func (s *Static[T]) Publish(names ...topic.Topic) {
	s.publish(s, names)
}
