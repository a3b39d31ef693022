// Package metrics exposes Prometheus collectors describing HTTP traffic and
// changes to the task collection.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/todo-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "todo_api"

// Metrics holds the application's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	taskEvents   *prometheus.CounterVec
}

// Ensure Metrics can subscribe to task events
var _ events.EventHandler = (*Metrics)(nil)

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// storedTasks is sampled at scrape time for the stored-task gauge; a nil func
// leaves the gauge out. Collectors that are already registered are reused; any
// other registration error panics.
func MustNewMetrics(reg prometheus.Registerer, storedTasks func() int) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route pattern and status code.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	taskEvents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "events_total",
			Help:      "Total number of task events by type.",
		},
		[]string{"type"},
	)

	collectors := []prometheus.Collector{httpRequests, httpDuration, taskEvents}
	if storedTasks != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "stored",
				Help:      "Number of tasks currently held in the store.",
			},
			func() float64 { return float64(storedTasks()) },
		))
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				// ALLOW-PANIC: conflicting collector definitions are a programming error
				panic(err)
			}
			switch collector {
			case httpRequests:
				httpRequests = already.ExistingCollector.(*prometheus.CounterVec)
			case httpDuration:
				httpDuration = already.ExistingCollector.(*prometheus.HistogramVec)
			case taskEvents:
				taskEvents = already.ExistingCollector.(*prometheus.CounterVec)
			}
		}
	}

	// Every event type is exported from the start, at zero until it occurs
	for _, eventType := range events.AllEventTypes {
		taskEvents.WithLabelValues(string(eventType))
	}

	return &Metrics{
		httpRequests: httpRequests,
		httpDuration: httpDuration,
		taskEvents:   taskEvents,
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// HandleEvent counts the event by type.
func (m *Metrics) HandleEvent(_ context.Context, event *events.TaskEvent) error {
	if m == nil || event == nil {
		return nil
	}
	m.taskEvents.WithLabelValues(string(event.Type)).Inc()
	return nil
}

// Handler serves the metrics gathered by g in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
