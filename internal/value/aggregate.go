package value

import (
	"sync"

	"github.com/dshills/mediator/internal/event"
	"github.com/dshills/mediator/internal/event/topic"
	"github.com/dshills/mediator/internal/reduce"
)

// Aggregate is a derived value: the fold of the data published under its
// dependency keys. It is recomputed on every read and re-notifies its own
// topics whenever a dependency changes.
type Aggregate[T any] struct {
	publication[T]

	seed T
	fn   reduce.Func[T]

	dmu  sync.RWMutex
	deps []topic.Key
}

// NewAggregate creates an aggregate folding its dependencies with fn
// from seed, and registers it on m under name.
func NewAggregate[T any](m *event.Mediator[T], name topic.Topic, seed T, fn reduce.Func[T]) *Aggregate[T] {
	if fn == nil {
		panic("value: nil reducer")
	}
	a := &Aggregate[T]{seed: seed, fn: fn}
	a.init(m, name)
	Register[T](m, a)
	return a
}

// NewDynamic creates an aggregate summing its dependencies from zero.
func NewDynamic[T reduce.Number](m *event.Mediator[T], name topic.Topic) *Aggregate[T] {
	return NewAggregate(m, name, 0, reduce.Sum[T])
}

// Current folds the data currently published under the dependency keys.
// With no resolved dependencies it returns the seed.
func (a *Aggregate[T]) Current() T {
	data := a.m.PublishedData(a.Dependencies()...)
	return reduce.Fold(data, a.seed, a.fn)
}

// Subscribe appends keys to the dependencies and subscribes to them.
// Each currently published dependency triggers a notification of the
// aggregate's topics right away.
func (a *Aggregate[T]) Subscribe(keys ...topic.Key) {
	a.dmu.Lock()
	a.deps = append(a.deps, keys...)
	a.dmu.Unlock()

	a.m.Subscribe(a.changed, keys...)
}

// AddDependency is Subscribe for a single key.
func (a *Aggregate[T]) AddDependency(key topic.Key) {
	a.Subscribe(key)
}

// Dependencies returns the dependency keys in subscription order.
func (a *Aggregate[T]) Dependencies() []topic.Key {
	a.dmu.RLock()
	defer a.dmu.RUnlock()

	result := make([]topic.Key, len(a.deps))
	copy(result, a.deps)
	return result
}

// Publish additionally publishes the aggregate under names.
func (a *Aggregate[T]) Publish(names ...topic.Topic) {
	a.publish(a, names)
}

func (a *Aggregate[T]) changed(topic.Topic) {
	a.notify()
}
