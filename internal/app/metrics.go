package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dshills/mediator/internal/event"
)

// Metric names exported by MetricsObserver.
const (
	MetricPublishersAdded  = "mediator_publishers_added_total"
	MetricSubscribersAdded = "mediator_subscribers_added_total"
	MetricNotifications    = "mediator_topic_notifications_total"
)

// MetricsObserver counts mediator registry events in Prometheus metrics.
type MetricsObserver struct {
	gatherer prometheus.Gatherer

	publishers    prometheus.Counter
	subscribers   *prometheus.CounterVec
	notifications prometheus.Counter
}

// MetricsSnapshot holds the current counter values.
type MetricsSnapshot struct {
	PublishersAdded uint64
	// SubscribersAdded is keyed by key kind (exact, regexp, ...).
	SubscribersAdded map[string]uint64
	Notifications    uint64
}

// NewMetricsObserver creates the counters and registers them on reg.
func NewMetricsObserver(reg *prometheus.Registry) (*MetricsObserver, error) {
	m := &MetricsObserver{
		gatherer: reg,
		publishers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricPublishersAdded,
			Help: "Publishers registered on the mediator.",
		}),
		subscribers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricSubscribersAdded,
			Help: "Subscribers registered on the mediator, by key kind.",
		}, []string{"kind"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricNotifications,
			Help: "Topic notification rounds started.",
		}),
	}

	for _, c := range []prometheus.Collector{m.publishers, m.subscribers, m.notifications} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering mediator metrics: %w", err)
		}
	}
	return m, nil
}

// Observe implements event.Observer.
func (m *MetricsObserver) Observe(ev event.Event) error {
	switch ev.Kind {
	case event.PublisherAdded:
		m.publishers.Inc()
	case event.SubscriberAdded:
		m.subscribers.WithLabelValues(ev.Key.Kind().String()).Inc()
	case event.TopicPublished:
		m.notifications.Inc()
	default:
		return fmt.Errorf("unexpected event kind %d", ev.Kind)
	}
	return nil
}

// Snapshot gathers the current counter values.
func (m *MetricsObserver) Snapshot() (MetricsSnapshot, error) {
	families, err := m.gatherer.Gather()
	if err != nil {
		return MetricsSnapshot{}, fmt.Errorf("gathering metrics: %w", err)
	}

	snap := MetricsSnapshot{SubscribersAdded: make(map[string]uint64)}
	for _, mf := range families {
		switch mf.GetName() {
		case MetricPublishersAdded:
			snap.PublishersAdded = counterTotal(mf)
		case MetricNotifications:
			snap.Notifications = counterTotal(mf)
		case MetricSubscribersAdded:
			for _, metric := range mf.GetMetric() {
				snap.SubscribersAdded[labelValue(metric, "kind")] += uint64(metric.GetCounter().GetValue())
			}
		}
	}
	return snap, nil
}

func counterTotal(mf *dto.MetricFamily) uint64 {
	var total uint64
	for _, metric := range mf.GetMetric() {
		total += uint64(metric.GetCounter().GetValue())
	}
	return total
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
