package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// maxFeedBytes bounds the response body. The all_month feed is ~10 MB.
const maxFeedBytes = 64 << 20

// Client downloads a USGS GeoJSON summary feed.
// It implements pipeline.FeedFetcher.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client for feedURL.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// FetchFeatures downloads the feed once and parses it. Features that cannot
// be styled are returned as issues rather than errors.
func (c *Client) FetchFeatures(ctx context.Context) ([]domain.SeismicFeature, []domain.ParseIssue, error) {
	start := time.Now()
	features, issues, err := c.fetch(ctx)
	c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FeedFetches.WithLabelValues("error").Inc()
		return nil, nil, err
	}
	c.metrics.FeedFetches.WithLabelValues("success").Inc()
	c.logger.Debug("feed fetched",
		"url", c.feedURL,
		"features", len(features),
		"skipped", len(issues),
		"duration", time.Since(start),
	)
	return features, issues, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.SeismicFeature, []domain.ParseIssue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, nil, fmt.Errorf("feed error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read feed: %w", err)
	}

	return domain.ParseFeatureCollection(body)
}
