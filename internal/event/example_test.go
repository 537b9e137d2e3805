package event_test

import (
	"fmt"

	"github.com/dshills/mediator/internal/event"
	"github.com/dshills/mediator/internal/event/topic"
)

func Example() {
	m := event.New[int]()

	m.Publish(func(topic.Topic) int { return 10 }, "buff.a")
	m.Publish(func(topic.Topic) int { return 2 }, "buff.b")

	m.Subscribe(func(name topic.Topic) {
		fmt.Println("changed:", name)
	}, topic.MustWildcard("buff.*"))

	fmt.Println(m.PublishedData(topic.MustWildcard("buff.*")))
	// Output:
	// changed: buff.a
	// changed: buff.b
	// [10 2]
}

func ExampleMediator_NotifySubscribers() {
	m := event.New[string]()

	m.Subscribe(func(name topic.Topic) { fmt.Println("exact", name) }, topic.Exact("stats.str"))
	m.Subscribe(func(name topic.Topic) { fmt.Println("pattern", name) }, topic.MustRegexp(`stats\..+`))

	m.NotifySubscribers("stats.str", "stats.int")
	// Output:
	// exact stats.str
	// pattern stats.str
	// pattern stats.int
}
