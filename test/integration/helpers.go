//go:build integration

// Package integration holds tests that exercise the compute pipeline
// against a real Kafka broker.  Tests run against the broker named by
// CHEMDESC_TEST_KAFKA_BROKERS, or start a Redpanda container when
// CHEMDESC_TEST_USE_DOCKER is set; otherwise they skip.
package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
)

const (
	// EnvKafkaBrokers points tests at an externally managed broker.
	EnvKafkaBrokers = "CHEMDESC_TEST_KAFKA_BROKERS"

	// EnvUseDocker enables starting a broker container via Docker.
	EnvUseDocker = "CHEMDESC_TEST_USE_DOCKER"

	// redpandaHostPort is the fixed host port the container's Kafka
	// listener is advertised on; fixed because the advertised address
	// must be known before the container starts.
	redpandaHostPort = "19092"
)

// brokerAddress returns a reachable Kafka broker for this test, skipping
// when neither an external broker nor Docker is available.
func brokerAddress(t *testing.T) []string {
	t.Helper()

	if brokers := os.Getenv(EnvKafkaBrokers); brokers != "" {
		return strings.Split(brokers, ",")
	}
	if os.Getenv(EnvUseDocker) == "" {
		t.Skipf("set %s or %s to run Kafka integration tests", EnvKafkaBrokers, EnvUseDocker)
	}
	return []string{startRedpanda(t)}
}

// startRedpanda launches a single-node Redpanda container speaking the
// Kafka protocol on a fixed host port.
func startRedpanda(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redpandadata/redpanda:v23.3.11",
		ExposedPorts: []string{redpandaHostPort + ":9092/tcp"},
		Cmd: []string{
			"redpanda", "start",
			"--mode=dev-container",
			"--smp=1",
			"--kafka-addr=PLAINTEXT://0.0.0.0:9092",
			"--advertise-kafka-addr=PLAINTEXT://localhost:" + redpandaHostPort,
		},
		WaitingFor: wait.ForListeningPort("9092/tcp").WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	return "localhost:" + redpandaHostPort
}

// ensureTopics creates the pipeline topics, tolerating pre-existing ones.
func ensureTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	ctx := context.Background()

	manager, err := kafka.NewTopicManager(brokers, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	for _, topic := range topics {
		require.NoError(t, manager.CreateTopic(ctx, kafka.TopicConfig{
			Name:              topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}))
	}
}
