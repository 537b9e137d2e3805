package event

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/dshills/mediator/internal/event/topic"
)

func collect(events *[]string) ObserverFunc {
	return func(ev Event) error {
		*events = append(*events, ev.String())
		return nil
	}
}

func TestObserver_EventOrder(t *testing.T) {
	var events []string
	m := New[int](WithLogger(slogt.New(t)), WithObserver(collect(&events)))

	m.Subscribe(func(topic.Topic) {}, topic.MustRegexp(`a\d`))
	m.Publish(constant(1), "a1")
	m.NotifySubscribers("b1")

	assert.Equal(t, []string{
		`subscriber-added re:a\d`,
		"publisher-added a1",
		"topic-published a1",
		"topic-published b1",
	}, events)
}

func TestObserver_ErrorIsIsolated(t *testing.T) {
	m := newTestMediator(t)
	var events []string

	m.AddObserver(ObserverFunc(func(Event) error { return errors.New("broken") }))
	m.AddObserver(collect(&events))

	var r recorder
	m.Subscribe(r.subscriber(), topic.Exact("t"))
	m.Publish(constant(1), "t")

	assert.Equal(t, []topic.Topic{"t"}, r.calls, "data flow is unaffected")
	assert.Len(t, events, 3, "later observers still run")
	assert.Equal(t, uint64(3), m.ObserverFailures())
}

func TestObserver_PanicIsIsolated(t *testing.T) {
	var handled []any
	m := New[int](
		WithLogger(slogt.New(t)),
		WithObserverPanicHandler(func(_ any, v any, stack []byte) {
			handled = append(handled, v)
			assert.NotEmpty(t, stack)
		}),
	)
	m.AddObserver(ObserverFunc(func(Event) error { panic("observer exploded") }))

	assert.NotPanics(t, func() {
		m.Publish(constant(1), "t")
	})
	assert.Equal(t, []any{"observer exploded", "observer exploded"}, handled)
	assert.Equal(t, uint64(2), m.ObserverFailures())
}

func TestObserverSet_BroadcastCombinesErrors(t *testing.T) {
	s := newObserverSet(nil)
	boom := errors.New("boom")
	failing := s.add(ObserverFunc(func(Event) error { return boom }))
	s.add(ObserverFunc(func(Event) error { panic(42) }))
	s.add(ObserverFunc(func(Event) error { return nil }))

	err := s.broadcast(Event{Kind: TopicPublished, Topic: "t"})
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], boom)
	assert.ErrorIs(t, errs[0], ErrObserverFailure)

	var first *ObserverError
	require.ErrorAs(t, errs[0], &first)
	assert.Equal(t, failing, first.ObserverID)
	assert.False(t, first.Panicked)

	var second *ObserverError
	require.ErrorAs(t, errs[1], &second)
	assert.True(t, second.Panicked)
	assert.Equal(t, 42, second.PanicValue)
	assert.Contains(t, second.Error(), "panicked on topic-published t")
}

func TestObserver_Remove(t *testing.T) {
	m := newTestMediator(t)
	var events []string

	id := m.AddObserver(collect(&events))
	assert.Equal(t, 1, m.ObserverCount())

	require.NoError(t, m.RemoveObserver(id))
	assert.Equal(t, 0, m.ObserverCount())

	m.Publish(constant(1), "t")
	assert.Empty(t, events)

	assert.ErrorIs(t, m.RemoveObserver(id), ErrObserverNotFound)
	assert.ErrorIs(t, m.RemoveObserver(ObserverID(uuid.New())), ErrObserverNotFound)
}

func TestObserver_WithObserverIgnoresNil(t *testing.T) {
	m := New[int](WithObserver(nil), WithLogger(nil))

	assert.Equal(t, 0, m.ObserverCount())
	assert.NotNil(t, m.logger)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "publisher-added", PublisherAdded.String())
	assert.Equal(t, "subscriber-added", SubscriberAdded.String())
	assert.Equal(t, "topic-published", TopicPublished.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}
