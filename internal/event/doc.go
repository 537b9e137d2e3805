// Package event provides the Mediator, an in-process publish/subscribe
// registry that decouples producers of named data from their consumers.
//
// # Architecture
//
//	            ┌──────────────────────────────────────┐
//	            │             Mediator[T]              │
//	            │  publishers: topic -> []Publisher[T] │
//	            │  subscribers: key  -> []Subscriber   │
//	            └──────────────────────────────────────┘
//	                 │                     │
//	       Publish / PublishedData   Subscribe / NotifySubscribers
//	                 │                     │
//	       ┌─────────────────┐   ┌───────────────────┐
//	       │  exact topics   │   │ exact + pattern   │
//	       │  only           │   │ keys (topic.Key)  │
//	       └─────────────────┘   └───────────────────┘
//
// Publishers are registered only under exact topic names. Subscribers
// are registered under keys, which are either exact names or patterns.
// Patterns are resolved when they are used, against whatever names have
// been published by then.
//
// # Notification Order
//
// For a published topic, subscribers of its exact key are called first,
// in subscription order. Then, for each pattern key that matches, in the
// order the patterns were first subscribed, that key's subscribers are
// called in subscription order. A subscriber registered under two
// matching keys is called once per key.
//
// # Replay
//
// Subscribe immediately calls the new subscriber once for every matching
// topic that already has a publisher:
//
//	m := event.New[int]()
//	m.Publish(func(topic.Topic) int { return 1 }, "a1")
//	m.Subscribe(func(name topic.Topic) {
//	    fmt.Println("changed:", name) // prints "changed: a1" right away
//	}, topic.Exact("a1"))
//
// # Re-entrancy
//
// Callbacks may publish, subscribe or notify on the same mediator. Each
// notification round iterates a snapshot of the subscriber lists taken
// when the round starts. There is no cycle detection: a subscriber that
// transitively notifies its own topic recurses without bound.
//
// # Observers
//
// Observers receive PublisherAdded, SubscriberAdded and TopicPublished
// events for diagnostics. Observer errors and panics are recovered,
// logged and counted; they never reach the caller.
package event
