package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// FeedFetcher downloads and parses the earthquake feed.
type FeedFetcher interface {
	FetchFeatures(ctx context.Context) ([]domain.SeismicFeature, []domain.ParseIssue, error)
}

// MarkerPublisher forwards a rendered layer to a downstream sink.
type MarkerPublisher interface {
	PublishLayer(ctx context.Context, layer domain.MarkerLayer) error
}

// Renderer runs one fetch followed by synchronous styling of every feature.
type Renderer struct {
	fetcher   FeedFetcher
	styler    domain.Styler
	publisher MarkerPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Renderer. Pass a nil publisher to skip publishing.
func New(f FeedFetcher, s domain.Styler, p MarkerPublisher, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	return &Renderer{
		fetcher:   f,
		styler:    s,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a render has completed successfully.
func (r *Renderer) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no marker layer has been rendered yet")
	}
	return nil
}

// Render fetches the feed and styles it into a marker layer. A fetch error
// is returned as-is; nothing is retried.
//
// Each successful call republishes the whole layer, so the sink receives one
// message per marker per render. With the HTTP adapter that means one batch
// per /api/markers request; sink consumers should key on the feature ID.
func (r *Renderer) Render(ctx context.Context) (domain.MarkerLayer, error) {
	start := time.Now()

	features, issues, err := r.fetcher.FetchFeatures(ctx)
	if err != nil {
		r.logger.Error("fetch feed failed", "error", err)
		return domain.MarkerLayer{}, fmt.Errorf("render markers: %w", err)
	}

	for _, issue := range issues {
		r.logger.Warn("feature skipped",
			"index", issue.Index,
			"id", issue.ID,
			"reason", issue.Reason,
		)
	}
	r.metrics.FeaturesSkipped.Add(float64(len(issues)))

	markers := StyleFeatures(r.styler, features)
	for _, m := range markers {
		r.metrics.MarkersByBand.WithLabelValues(m.FillColor).Inc()
	}
	r.metrics.FeaturesStyled.Add(float64(len(markers)))

	layer := domain.NewMarkerLayer(markers, issues)
	r.publish(ctx, layer)

	r.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	r.ready.Store(true)
	r.logger.Info("markers rendered",
		"markers", len(markers),
		"skipped", len(issues),
		"duration", time.Since(start),
	)
	return layer, nil
}

// publish hands the layer to the sink. Failures are logged and counted but
// never fail the render.
func (r *Renderer) publish(ctx context.Context, layer domain.MarkerLayer) {
	if r.publisher == nil || len(layer.Markers) == 0 {
		return
	}
	if err := r.publisher.PublishLayer(ctx, layer); err != nil {
		r.metrics.PublishErrors.Inc()
		r.logger.Error("publish marker layer failed", "error", err, "markers", len(layer.Markers))
		return
	}
	r.metrics.MarkersPublished.Add(float64(len(layer.Markers)))
}
