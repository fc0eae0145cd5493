package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Default feed and base map sources.
const (
	DefaultFeedURL       = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"
	DefaultStreetTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultTopoTileURL   = "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedURL          string
	FeedTimeout      time.Duration
	StreetTileURL    string
	TopoTileURL      string
	EscapePopupPlace bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka marker sink, enabled when brokers are set.
	KafkaBrokers     []string
	KafkaMarkerTopic string
	KafkaEnabled     bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parsePositiveDuration("FEED_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	escape, err := parseBool("POPUP_ESCAPE_PLACE", true)
	if err != nil {
		return nil, err
	}

	brokers := sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		FeedURL:          sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		FeedTimeout:      feedTimeout,
		StreetTileURL:    sharedcfg.EnvOrDefault("STREET_TILE_URL", DefaultStreetTileURL),
		TopoTileURL:      sharedcfg.EnvOrDefault("TOPO_TILE_URL", DefaultTopoTileURL),
		EscapePopupPlace: escape,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:     brokers,
		KafkaMarkerTopic: sharedcfg.EnvOrDefault("KAFKA_MARKER_TOPIC", "quake-markers"),
		KafkaEnabled:     len(brokers) > 0,
	}

	if !strings.HasPrefix(cfg.FeedURL, "http://") && !strings.HasPrefix(cfg.FeedURL, "https://") {
		return nil, errors.New("FEED_URL must be an http(s) URL")
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("invalid " + key)
	}
	return b, nil
}

