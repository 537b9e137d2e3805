package app

import (
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mediator/internal/event"
	"github.com/dshills/mediator/internal/event/topic"
)

func TestMetricsObserver_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	m := event.New[int](event.WithLogger(slogt.New(t)), event.WithObserver(metrics))
	m.Subscribe(func(topic.Topic) {}, topic.Exact("a1"), topic.MustRegexp(`a\d`))
	m.Publish(func(topic.Topic) int { return 1 }, "a1", "a2")
	m.NotifySubscribers("a1")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.publishers))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.notifications))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.subscribers.WithLabelValues("exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.subscribers.WithLabelValues("regexp")))

	expected := `
# HELP mediator_publishers_added_total Publishers registered on the mediator.
# TYPE mediator_publishers_added_total counter
mediator_publishers_added_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), MetricPublishersAdded))
}

func TestMetricsObserver_Snapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	require.NoError(t, metrics.Observe(event.Event{Kind: event.PublisherAdded, Topic: "t"}))
	require.NoError(t, metrics.Observe(event.Event{Kind: event.SubscriberAdded, Key: topic.MustWildcard("a.*")}))
	require.NoError(t, metrics.Observe(event.Event{Kind: event.SubscriberAdded, Key: topic.MustWildcard("b.*")}))
	require.NoError(t, metrics.Observe(event.Event{Kind: event.TopicPublished, Topic: "t"}))

	snap, err := metrics.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, MetricsSnapshot{
		PublishersAdded:  1,
		SubscribersAdded: map[string]uint64{"wildcard": 2},
		Notifications:    1,
	}, snap)
}

func TestMetricsObserver_UnknownEvent(t *testing.T) {
	metrics, err := NewMetricsObserver(prometheus.NewRegistry())
	require.NoError(t, err)

	assert.Error(t, metrics.Observe(event.Event{}))
}

func TestMetricsObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	_, err = NewMetricsObserver(reg)
	assert.Error(t, err)
}
