//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkaadapter "github.com/Mohamedmoufaq/Climate-credit-score-system/internal/adapter/kafka"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/catalog"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/observability"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/scoring"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testAuditTopic = "test-credit-score-audit"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// auditMessage holds a deserialized message read from the audit topic.
type auditMessage struct {
	Event   domain.AuditEvent
	Key     string
	Headers map[string]string
}

func readAudit(ctx context.Context, t *testing.T, consumer *kafkago.Reader) auditMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from audit topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.AuditEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal audit message")

	return auditMessage{Event: event, Key: string(msg.Key), Headers: headers}
}

// TestAuditWriterRoundTrip verifies that kafka.Writer publishes an audit event
// that a plain consumer can read back intact, headers included.
func TestAuditWriterRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAuditTopic)

	writer := kafkaadapter.NewWriter([]string{broker}, testAuditTopic, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	assessment := domain.Assessment{
		ID:           "abc123def4567890",
		BorrowerName: "A. Borrower",
		Location:     domain.Location{State: "Tamil Nadu", City: "Chennai", Lat: 13.0827, Lon: 80.2707},
		Indicators:   domain.Indicators{Flood: 0.42, Drought: 0.31, Heat: 0.25, Cyclone: 0.38, Rainfall: 0.44},
		Source:       "derived",
		Score:        domain.ScoreResult{BaseScore: 750, Penalty: 44.58, AdjustedScore: 705.42, Category: domain.RiskLow},
		ScoredAt:     time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, writer.Publish(ctx, domain.NewAuditEvent(assessment)))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAuditTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	am := readAudit(ctx, t, consumer)

	assert.Equal(t, "abc123def4567890", am.Key)
	assert.Equal(t, "score", am.Headers["action"])
	assert.Equal(t, "Low", am.Headers["category"])
	scoredAt, err := time.Parse(time.RFC3339, am.Headers["scored_at"])
	require.NoError(t, err, "scored_at should be valid RFC3339")
	assert.True(t, scoredAt.Equal(assessment.ScoredAt))

	assert.Equal(t, domain.AuditActionScore, am.Event.Action)
	assert.Equal(t, assessment.ID, am.Event.Assessment.ID)
	assert.Equal(t, 705.42, am.Event.Assessment.Score.AdjustedScore)
	assert.Contains(t, am.Event.RiskFactors, "flood=0.42")
	assert.Contains(t, am.Event.RiskFactors, "category=Low")
}

// TestScoringPublishesAuditEndToEnd runs a real scoring request with the Kafka
// sink wired in and verifies the audit event lands on the topic.
func TestScoringPublishesAuditEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAuditTopic)

	writer := kafkaadapter.NewWriter([]string{broker}, testAuditTopic, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	scorer := scoring.New(catalog.DerivedSource{}, scoring.SourceDerived, catalog.New(), writer,
		domain.DefaultScoringConfig(), discardLogger(), observability.NewMetricsForTesting())

	apps := []domain.Application{
		{
			BorrowerName: "Coastal Borrower",
			Profile:      domain.FinancialProfile{BaseScore: 760, OnTimeRatio: 0.95},
			Location:     domain.Location{City: "Chennai"},
		},
		{
			BorrowerName: "Inland Borrower",
			Profile:      domain.FinancialProfile{BaseScore: 640, OnTimeRatio: 0.88},
			Location:     domain.Location{City: "Jaipur"},
		},
	}

	scored := make(map[string]domain.Assessment, len(apps))
	for _, app := range apps {
		assessment, err := scorer.Score(ctx, app)
		require.NoError(t, err)
		scored[assessment.ID] = assessment
	}

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAuditTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	for range apps {
		am := readAudit(ctx, t, consumer)

		expected, ok := scored[am.Key]
		require.True(t, ok, "audit key %q should match a scored assessment", am.Key)
		assert.Equal(t, expected.Score.AdjustedScore, am.Event.Assessment.Score.AdjustedScore)
		assert.Equal(t, expected.Location.City, am.Event.Assessment.Location.City)
		assert.Equal(t, string(expected.Score.Category), am.Headers["category"])
		assert.Equal(t, "derived", am.Event.Assessment.Source)
	}
}
