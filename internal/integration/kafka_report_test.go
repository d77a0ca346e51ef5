//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/taylor-green/internal/adapter/kafka"
	"github.com/couchcryptid/taylor-green/internal/config"
	"github.com/couchcryptid/taylor-green/internal/observability"
	"github.com/couchcryptid/taylor-green/internal/pipeline"
	"github.com/couchcryptid/taylor-green/internal/vortex"
)

const (
	kafkaImage = "confluentinc/confluent-local:7.5.0"
	testTopic  = "test-taylor-green-reports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, kafkaImage, tckafka.WithClusterID("taylor-green-test"))
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesReport runs the pipeline with the Kafka writer and
// reads the published report back from the topic.
func TestPipelinePublishesReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaEnabled: true,
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	g, err := vortex.UniformGrid(
		vortex.Bounds{Min: 0, Max: 2 * math.Pi},
		vortex.Bounds{Min: 0, Max: 2 * math.Pi},
		50, 40,
	)
	require.NoError(t, err)

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(writer, &bytes.Buffer{}, discardLogger(), metrics)
	res, err := p.Run(ctx, g, vortex.Params{Time: 1, Viscosity: 0.1})
	require.NoError(t, err)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read report from topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, res.Report.ID, string(msg.Key))
	assert.Equal(t, "50x40", headers["grid"])
	assert.Equal(t, res.Report.ComputedAt.Format(time.RFC3339), headers["computed_at"])

	var got vortex.Report
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, res.Report.ID, got.ID)
	assert.Equal(t, 50, got.Nx)
	assert.Equal(t, 40, got.Ny)
	require.Len(t, got.Errors, 4)

	u, ok := got.MaxError(vortex.LabelU)
	require.True(t, ok)
	assert.InDelta(t, 3.535e-3, u, 1e-5)
}
