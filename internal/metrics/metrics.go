// Package metrics implements the observability hooks with Prometheus
// collectors.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/bulletins/pkg/observability"
)

const namespace = "bulletins"

// Metrics holds the collectors. It implements observability.EditorHooks,
// observability.DraftHooks and observability.HTTPHooks.
type Metrics struct {
	gatherer prometheus.Gatherer

	propagations       *prometheus.CounterVec
	propagatedFields   *prometheus.CounterVec
	propagationSeconds *prometheus.HistogramVec
	fieldEdits         *prometheus.CounterVec
	fieldResets        *prometheus.CounterVec

	draftLookups *prometheus.CounterVec
	draftSaves   *prometheus.CounterVec
	draftFields  prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpSeconds  *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, which also carries the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg and serves them from g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: g,

		propagations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "style_propagations_total",
			Help:      "Container style changes propagated into fields, by container scope.",
		}, []string{"scope"}),
		propagatedFields: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "style_propagated_fields_total",
			Help:      "Fields visited by propagation, by ownership state.",
		}, []string{"state"}),
		propagationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "style_propagation_duration_seconds",
			Help:      "Time spent propagating a container style change.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"scope"}),
		fieldEdits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_style_edits_total",
			Help:      "Direct field style edits, by field type.",
		}, []string{"type"}),
		fieldResets: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_style_resets_total",
			Help:      "Fields reset to inherit, by field type.",
		}, []string{"type"}),

		draftLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_lookups_total",
			Help:      "Draft lookups, by backend and result.",
		}, []string{"backend", "result"}),
		draftSaves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_saves_total",
			Help:      "Draft writes, by backend.",
		}, []string{"backend"}),
		draftFields: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "draft_fields",
			Help:      "Number of fields in saved drafts.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses, by method, route and status code.",
		}, []string{"method", "path", "code"}),
		httpSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "HTTP requests that failed without a response.",
		}, []string{"method", "path"}),
	}
}

// Register installs m as the global editor, draft and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetEditorHooks(m)
	observability.SetDraftHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) OnPropagate(_ context.Context, scope string, inheriting, manual int, d time.Duration) {
	m.propagations.WithLabelValues(scope).Inc()
	m.propagatedFields.WithLabelValues("inheriting").Add(float64(inheriting))
	m.propagatedFields.WithLabelValues("manual").Add(float64(manual))
	m.propagationSeconds.WithLabelValues(scope).Observe(d.Seconds())
}

func (m *Metrics) OnFieldEdit(_ context.Context, fieldType string) {
	m.fieldEdits.WithLabelValues(fieldType).Inc()
}

func (m *Metrics) OnFieldReset(_ context.Context, fieldType string) {
	m.fieldResets.WithLabelValues(fieldType).Inc()
}

func (m *Metrics) OnDraftHit(_ context.Context, backend string) {
	m.draftLookups.WithLabelValues(backend, "hit").Inc()
}

func (m *Metrics) OnDraftMiss(_ context.Context, backend string) {
	m.draftLookups.WithLabelValues(backend, "miss").Inc()
}

func (m *Metrics) OnDraftSave(_ context.Context, backend string, fields int) {
	m.draftSaves.WithLabelValues(backend).Inc()
	m.draftFields.Observe(float64(fields))
}

// OnRequest is a no-op; requests are counted when they complete.
func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, _, path string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpSeconds.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, _, path string, _ error) {
	m.httpErrors.WithLabelValues(method, path).Inc()
}

var (
	_ observability.EditorHooks = (*Metrics)(nil)
	_ observability.DraftHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)
