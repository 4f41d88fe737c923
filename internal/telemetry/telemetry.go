// Package telemetry provides Prometheus metrics and OpenTelemetry
// tracing for the annotation pipeline.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "annotator"

// Metrics holds all annotator Prometheus metrics.
type Metrics struct {
	// Pipeline metrics
	PostsProcessed     *prometheus.CounterVec
	PostsFailed        prometheus.Counter
	ProcessingDuration prometheus.Histogram

	// Location resolver metrics
	ResolverHits   *prometheus.CounterVec
	ResolverMisses prometheus.Counter

	// Classification metrics
	CategoryAssigned *prometheus.CounterVec
	RescueApplied    *prometheus.CounterVec

	// Review routing metrics
	ReviewRouted *prometheus.CounterVec

	// Semantic backend metrics
	SemanticFailures *prometheus.CounterVec

	// State gauges
	GazetteerRecords *prometheus.GaugeVec
	TemporalWindow   prometheus.Gauge
}

// Provider wraps metrics and tracing for the annotator service.
type Provider struct {
	Metrics *Metrics
	Tracer  trace.Tracer
}

// NewProvider initializes telemetry with Prometheus metrics on the
// default registry.
func NewProvider() *Provider {
	return &Provider{
		Metrics: initMetrics(),
		Tracer:  otel.Tracer(serviceName),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	return &Metrics{
		PostsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "annotator_posts_processed_total",
			Help: "Posts annotated, by event category and review status",
		}, []string{"category", "status"}),
		PostsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "annotator_posts_failed_total",
			Help: "Input records skipped as malformed or empty",
		}),
		ProcessingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "annotator_processing_duration_seconds",
			Help:    "Per-post pipeline latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),
		ResolverHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "annotator_resolver_hits_total",
			Help: "Location resolutions by provenance tier",
		}, []string{"source"}),
		ResolverMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "annotator_resolver_misses_total",
			Help: "Posts with no resolvable location",
		}),
		CategoryAssigned: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "annotator_category_assigned_total",
			Help: "Primary category assignments by mechanism (keyword, rescue)",
		}, []string{"mechanism"}),
		RescueApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "annotator_rescue_applied_total",
			Help: "Rescue reassignments by tier tag",
		}, []string{"tier"}),
		ReviewRouted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "annotator_review_routed_total",
			Help: "Review routing decisions",
		}, []string{"status"}),
		SemanticFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "annotator_semantic_failures_total",
			Help: "Semantic search backend failures by error kind",
		}, []string{"kind"}),
		GazetteerRecords: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "annotator_gazetteer_records",
			Help: "Indexed gazetteer names per administrative level",
		}, []string{"level"}),
		TemporalWindow: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "annotator_temporal_window_depth",
			Help: "Locations held in the temporal inference window",
		}),
	}
}

// RecordPost records one completed annotation. All Record/Set methods
// are safe on a nil provider so components run without telemetry wired.
func (p *Provider) RecordPost(category, status string, rescued bool, rescueTag string, duration time.Duration) {
	if p == nil {
		return
	}
	p.Metrics.PostsProcessed.WithLabelValues(category, status).Inc()
	p.Metrics.ProcessingDuration.Observe(duration.Seconds())
	p.Metrics.ReviewRouted.WithLabelValues(status).Inc()
	if rescued {
		p.Metrics.RescueApplied.WithLabelValues(rescueTag).Inc()
		p.Metrics.CategoryAssigned.WithLabelValues("rescue").Inc()
	} else {
		p.Metrics.CategoryAssigned.WithLabelValues("keyword").Inc()
	}
}

// RecordResolution records the resolver outcome for one post. An empty
// source means no tier produced a location.
func (p *Provider) RecordResolution(source string) {
	if p == nil {
		return
	}
	if source == "" {
		p.Metrics.ResolverMisses.Inc()
		return
	}
	p.Metrics.ResolverHits.WithLabelValues(source).Inc()
}

// RecordFailure counts a skipped input record.
func (p *Provider) RecordFailure() {
	if p == nil {
		return
	}
	p.Metrics.PostsFailed.Inc()
}

// RecordSemanticFailure counts a semantic backend error by kind.
func (p *Provider) RecordSemanticFailure(kind string) {
	if p == nil {
		return
	}
	p.Metrics.SemanticFailures.WithLabelValues(kind).Inc()
}

// SetGazetteerSize publishes the index sizes per administrative level.
func (p *Provider) SetGazetteerSize(villages, urbanBodies, districts int) {
	if p == nil {
		return
	}
	p.Metrics.GazetteerRecords.WithLabelValues("village").Set(float64(villages))
	p.Metrics.GazetteerRecords.WithLabelValues("urban_body").Set(float64(urbanBodies))
	p.Metrics.GazetteerRecords.WithLabelValues("district").Set(float64(districts))
}

// SetWindowDepth publishes the temporal window fill.
func (p *Provider) SetWindowDepth(depth int) {
	if p == nil {
		return
	}
	p.Metrics.TemporalWindow.Set(float64(depth))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if p == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
