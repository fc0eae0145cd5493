package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces styled markers to a Kafka topic.
// It implements pipeline.MarkerPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaMarkerTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishLayer writes every marker of the layer in a single WriteMessages call.
// Markers are keyed by feature ID so updates to the same quake land on the
// same partition.
func (w *Writer) PublishLayer(ctx context.Context, layer domain.MarkerLayer) error {
	if len(layer.Markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(layer.Markers))
	for i := range layer.Markers {
		msg, err := serializeToMessage(layer.Markers[i], layer.GeneratedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write markers: %w", err)
	}
	w.logger.Debug("marker layer published", "topic", w.writer.Topic, "markers", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Marker into a Kafka message.
func serializeToMessage(marker domain.Marker, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(marker)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(marker.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "depth_band", Value: []byte(marker.FillColor)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
