package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the render pipeline.
type Metrics struct {
	FeedFetches       *prometheus.CounterVec // labels: outcome={success,error}
	FeedFetchDuration prometheus.Histogram
	FeaturesStyled    prometheus.Counter
	FeaturesSkipped   prometheus.Counter
	RenderDuration    prometheus.Histogram

	// Depth band distribution of styled markers.
	MarkersByBand *prometheus.CounterVec // labels: color

	// Kafka marker sink.
	MarkersPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "feed_fetches_total",
			Help:      "Earthquake feed requests by outcome.",
		}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of a feed download and parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FeaturesStyled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "features_styled_total",
			Help:      "Total features turned into map markers.",
		}),
		FeaturesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "features_skipped_total",
			Help:      "Total features dropped for missing magnitude or depth.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete fetch-and-style pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		MarkersByBand: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "markers_by_band_total",
			Help:      "Styled markers by depth band fill color.",
		}, []string{"color"}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "markers_published_total",
			Help:      "Total markers written to the Kafka marker topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "publish_errors_total",
			Help:      "Total failed marker layer publishes.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quakemap",
			Name:      "publisher_enabled",
			Help:      "1 when the Kafka marker sink is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.FeedFetches,
		m.FeedFetchDuration,
		m.FeaturesStyled,
		m.FeaturesSkipped,
		m.RenderDuration,
		m.MarkersByBand,
		m.MarkersPublished,
		m.PublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FeedFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quakemap", Name: "feed_fetches_total"}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quakemap", Name: "feed_fetch_duration_seconds"}),
		FeaturesStyled:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quakemap", Name: "features_styled_total"}),
		FeaturesSkipped:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quakemap", Name: "features_skipped_total"}),
		RenderDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quakemap", Name: "render_duration_seconds"}),
		MarkersByBand:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quakemap", Name: "markers_by_band_total"}, []string{"color"}),
		MarkersPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quakemap", Name: "markers_published_total"}),
		PublishErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quakemap", Name: "publish_errors_total"}),
		PublisherEnabled:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quakemap", Name: "publisher_enabled"}),
	}
}
