package event

import (
	"sync"

	"github.com/dshills/mediator/internal/event/topic"
)

// keySubscribers is the subscriber list of one key.
type keySubscribers struct {
	key         topic.Key
	subscribers []Subscriber
}

// registry holds publishers by exact topic and subscribers by key.
// It is thread-safe; every read returns a copy so callers can iterate
// while callbacks append to the same lists.
//
// The lock is never held while user code runs. Pattern predicates are
// evaluated on snapshots outside the lock.
type registry[T any] struct {
	mu sync.RWMutex

	publishers map[topic.Topic][]Publisher[T]
	published  []topic.Topic // first-publication order

	subs     map[string]*keySubscribers // by Key.ID()
	exacts   []*keySubscribers          // first-subscription order
	patterns []*keySubscribers          // first-subscription order
}

// newRegistry creates an empty registry.
func newRegistry[T any]() *registry[T] {
	return &registry[T]{
		publishers: make(map[topic.Topic][]Publisher[T]),
		subs:       make(map[string]*keySubscribers),
	}
}

// addPublisher appends p to the publishers of name.
// Returns true if name had never been published before.
func (r *registry[T]) addPublisher(name topic.Topic, p Publisher[T]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pubs, seen := r.publishers[name]
	if !seen {
		r.published = append(r.published, name)
	}
	r.publishers[name] = append(pubs, p)
	return !seen
}

// addSubscriber appends s to the subscribers of key.
// Returns true if this is the key's first subscriber.
func (r *registry[T]) addSubscriber(key topic.Key, s Subscriber) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := key.ID()
	ks, ok := r.subs[id]
	if !ok {
		ks = &keySubscribers{key: key}
		r.subs[id] = ks
		if key.IsPattern() {
			r.patterns = append(r.patterns, ks)
		} else {
			r.exacts = append(r.exacts, ks)
		}
	}
	ks.subscribers = append(ks.subscribers, s)
	return !ok
}

// publishersOf returns a copy of the publishers registered under name.
func (r *registry[T]) publishersOf(name topic.Topic) []Publisher[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pubs := r.publishers[name]
	if len(pubs) == 0 {
		return nil
	}
	result := make([]Publisher[T], len(pubs))
	copy(result, pubs)
	return result
}

// publisherCount returns the number of publishers under name.
func (r *registry[T]) publisherCount(name topic.Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.publishers[name])
}

// topics returns a copy of all published names in first-publication order.
func (r *registry[T]) topics() []topic.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.published) == 0 {
		return nil
	}
	result := make([]topic.Topic, len(r.published))
	copy(result, r.published)
	return result
}

// subscribersOf returns a copy of the subscribers registered under key.
func (r *registry[T]) subscribersOf(key topic.Key) []Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ks := r.subs[key.ID()]
	if ks == nil || len(ks.subscribers) == 0 {
		return nil
	}
	result := make([]Subscriber, len(ks.subscribers))
	copy(result, ks.subscribers)
	return result
}

// patternSnapshot returns copies of every pattern key's subscriber list,
// in first-subscription order.
func (r *registry[T]) patternSnapshot() []keySubscribers {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.patterns) == 0 {
		return nil
	}
	result := make([]keySubscribers, len(r.patterns))
	for i, ks := range r.patterns {
		subs := make([]Subscriber, len(ks.subscribers))
		copy(subs, ks.subscribers)
		result[i] = keySubscribers{key: ks.key, subscribers: subs}
	}
	return result
}

// match returns the subscribers to notify for name: exact-key subscribers
// first, then the subscribers of each matching pattern key in the order
// the patterns were first subscribed. The result is a snapshot.
func (r *registry[T]) match(name topic.Topic) []Subscriber {
	all := r.subscribersOf(topic.Exact(name))
	for _, ks := range r.patternSnapshot() {
		if ks.key.Matches(name) {
			all = append(all, ks.subscribers...)
		}
	}
	return all
}

// resolve returns the exact topics denoted by key. An exact key denotes
// itself whether or not it has been published; a pattern denotes every
// published name it matches, in first-publication order.
func (r *registry[T]) resolve(key topic.Key) []topic.Topic {
	if key.IsExact() {
		return []topic.Topic{key.Name()}
	}

	var names []topic.Topic
	for _, name := range r.topics() {
		if key.Matches(name) {
			names = append(names, name)
		}
	}
	return names
}

// keys returns every subscribed key: exact keys then pattern keys, each
// in first-subscription order.
func (r *registry[T]) keys() []topic.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]topic.Key, 0, len(r.subs))
	for _, ks := range r.exacts {
		result = append(result, ks.key)
	}
	for _, ks := range r.patterns {
		result = append(result, ks.key)
	}
	return result
}
