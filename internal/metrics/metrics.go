package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const _namespace = "people_registry"

// Metrics holds Prometheus collectors for registry operations and HTTP traffic.
type Metrics struct {
	registry *prometheus.Registry

	PeopleCreated *prometheus.CounterVec
	PeopleUpdated *prometheus.CounterVec
	PeopleDeleted prometheus.Counter
	UsersCreated  prometheus.Counter
	LoginAttempts *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDurationS *prometheus.HistogramVec
}

// New registers every collector on a private registry, so several instances
// can live in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PeopleCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "people_created_total",
			Help:      "Total number of people created",
		}, []string{"with_photo"}),
		PeopleUpdated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "people_updated_total",
			Help:      "Total number of people updated",
		}, []string{"photo_replaced"}),
		PeopleDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "people_deleted_total",
			Help:      "Total number of people deleted",
		}),
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "users_created_total",
			Help:      "Total number of user accounts created",
		}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts by outcome",
		}, []string{"outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDurationS: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) PersonCreated(withPhoto bool) {
	m.PeopleCreated.WithLabelValues(strconv.FormatBool(withPhoto)).Inc()
}

func (m *Metrics) PersonUpdated(photoReplaced bool) {
	m.PeopleUpdated.WithLabelValues(strconv.FormatBool(photoReplaced)).Inc()
}

func (m *Metrics) PersonDeleted() {
	m.PeopleDeleted.Inc()
}

func (m *Metrics) UserCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) LoginAttempt(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one served request. route is the matched pattern,
// never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDurationS.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
