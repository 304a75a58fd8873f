package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes audit events to a Kafka topic.
// It implements domain.AuditSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the audit topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes an audit event and writes it to the audit topic,
// keyed by assessment ID so replays de-duplicate downstream.
func (w *Writer) Publish(ctx context.Context, event domain.AuditEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AuditEvent into a Kafka message.
func serializeToMessage(event domain.AuditEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize audit event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Assessment.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Assessment.Score.Category)},
			{Key: "scored_at", Value: []byte(event.Assessment.ScoredAt.Format(time.RFC3339))},
		},
	}, nil
}
