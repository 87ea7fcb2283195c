package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// Topic names. Compute requests flow in on the request topic, finished
// profiles flow out on the result topic, and requests that exhaust their
// retries land on the dead letter topic with diagnostic headers.
const (
	TopicComputeRequested = "molecule.compute.requested"
	TopicComputed         = "molecule.computed"
	TopicComputeDLQ       = "molecule.compute.dlq"
)

// Event types carried in the envelope; they match the topic the event is
// published on.
const (
	EventTypeComputeRequested = TopicComputeRequested
	EventTypeComputed         = TopicComputed
)

// SchemaVersion is stamped on every envelope this build produces.
const SchemaVersion = "v1"

// ─────────────────────────────────────────────────────────────────────────────
// Event Envelope
// ─────────────────────────────────────────────────────────────────────────────

// EventEnvelope is the wire frame around every event payload.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	OccurredAt    time.Time         `json:"occurred_at"`
	SchemaVersion string            `json:"schema_version"`
	TraceID       string            `json:"trace_id,omitempty"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NewEventEnvelope wraps a payload in a fresh envelope.
func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        source,
		OccurredAt:    time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the payload into target. An absent payload is a
// decode error: every event this engine publishes carries one.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return errors.New(errors.ErrCodeEnvelopeDecodeFailed, "event envelope carries no payload").
			WithDetail("event_type=" + e.EventType)
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeEnvelopeDecodeFailed, "failed to decode event payload")
	}
	return nil
}

// ToMessage serializes the envelope into a producer message keyed by the
// event ID, with routing headers mirrored out of the envelope.
func (e *EventEnvelope) ToMessage(topic string) (*ProducerMessage, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal event envelope")
	}
	headers := map[string]string{
		"event_type":     e.EventType,
		"source_service": e.Source,
		"schema_version": e.SchemaVersion,
	}
	if e.TraceID != "" {
		headers["trace_id"] = e.TraceID
	}
	return &ProducerMessage{
		Topic:     topic,
		Key:       []byte(e.EventID),
		Value:     value,
		Headers:   headers,
		Timestamp: e.OccurredAt,
	}, nil
}

// EnvelopeFromMessage parses a consumed record back into an envelope.
func EnvelopeFromMessage(msg *Message) (*EventEnvelope, error) {
	if len(msg.Value) == 0 {
		return nil, errors.New(errors.ErrCodeEnvelopeDecodeFailed, "empty message value").
			WithDetail("topic=" + msg.Topic)
	}
	var env EventEnvelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEnvelopeDecodeFailed, "failed to decode event envelope")
	}
	if env.EventType == "" {
		return nil, errors.New(errors.ErrCodeUnknownEventType, "event envelope carries no event type").
			WithDetail("topic=" + msg.Topic)
	}
	return &env, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Topic Management
// ─────────────────────────────────────────────────────────────────────────────

// TopicConfig describes one topic to ensure at startup.
type TopicConfig struct {
	Name              string
	NumPartitions     int
	ReplicationFactor int
	RetentionMs       int64
	CleanupPolicy     string
}

// ConnInterface abstracts the kafka broker connection for testing.
type ConnInterface interface {
	CreateTopics(topics ...kafka.TopicConfig) error
	DeleteTopics(topics ...string) error
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	Close() error
}

// TopicManager creates and inspects topics on the cluster.
type TopicManager struct {
	conn   ConnInterface
	logger logging.Logger
}

// NewTopicManager dials the first broker and returns a manager over it.
func NewTopicManager(brokers []string, logger logging.Logger) (*TopicManager, error) {
	if len(brokers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "brokers required")
	}
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to dial kafka broker")
	}
	return &TopicManager{conn: conn, logger: logger}, nil
}

// CreateTopic creates one topic, tolerating topics that already exist.
func (m *TopicManager) CreateTopic(ctx context.Context, cfg TopicConfig) error {
	if cfg.Name == "" {
		return errors.New(errors.ErrCodeValidation, "topic name required")
	}
	if cfg.NumPartitions <= 0 || cfg.ReplicationFactor <= 0 {
		return errors.New(errors.ErrCodeValidation, "partitions and replication factor must be positive").
			WithDetailf("topic=%s partitions=%d replication=%d", cfg.Name, cfg.NumPartitions, cfg.ReplicationFactor)
	}

	kCfg := kafka.TopicConfig{
		Topic:             cfg.Name,
		NumPartitions:     cfg.NumPartitions,
		ReplicationFactor: cfg.ReplicationFactor,
	}
	if cfg.RetentionMs > 0 {
		kCfg.ConfigEntries = append(kCfg.ConfigEntries,
			kafka.ConfigEntry{ConfigName: "retention.ms", ConfigValue: fmt.Sprintf("%d", cfg.RetentionMs)})
	}
	if cfg.CleanupPolicy != "" {
		kCfg.ConfigEntries = append(kCfg.ConfigEntries,
			kafka.ConfigEntry{ConfigName: "cleanup.policy", ConfigValue: cfg.CleanupPolicy})
	}

	if err := m.conn.CreateTopics(kCfg); err != nil {
		if exists, _ := m.TopicExists(ctx, cfg.Name); exists {
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to create topic").
			WithDetail("topic=" + cfg.Name)
	}
	m.logger.Info("topic created", logging.String("topic", cfg.Name))
	return nil
}

// DeleteTopic removes a topic; deletion failures are logged, not fatal.
func (m *TopicManager) DeleteTopic(ctx context.Context, name string) error {
	if err := m.conn.DeleteTopics(name); err != nil {
		m.logger.Warn("topic deletion failed", logging.String("topic", name), logging.Err(err))
		return nil
	}
	m.logger.Warn("topic deleted", logging.String("topic", name))
	return nil
}

// TopicExists reports whether the topic has at least one partition.
func (m *TopicManager) TopicExists(ctx context.Context, name string) (bool, error) {
	partitions, err := m.conn.ReadPartitions(name)
	if err != nil {
		return false, nil
	}
	return len(partitions) > 0, nil
}

// ListTopics returns the distinct topic names on the cluster.
func (m *TopicManager) ListTopics(ctx context.Context) ([]string, error) {
	partitions, err := m.conn.ReadPartitions()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to read partitions")
	}
	seen := make(map[string]bool)
	var topics []string
	for _, p := range partitions {
		if !seen[p.Topic] {
			seen[p.Topic] = true
			topics = append(topics, p.Topic)
		}
	}
	return topics, nil
}

// EnsureTopics creates every listed topic that does not already exist.
func (m *TopicManager) EnsureTopics(ctx context.Context, topics []TopicConfig) error {
	for _, topic := range topics {
		if err := m.CreateTopic(ctx, topic); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDefaultTopics creates the engine's three compute topics.
func (m *TopicManager) EnsureDefaultTopics(ctx context.Context) error {
	return m.EnsureTopics(ctx, DefaultTopics())
}

// Close releases the broker connection.
func (m *TopicManager) Close() error {
	return m.conn.Close()
}

// DefaultTopics returns the compute pipeline's topics with their retention.
func DefaultTopics() []TopicConfig {
	const day = int64(24 * 3600 * 1000)
	return []TopicConfig{
		{Name: TopicComputeRequested, NumPartitions: 6, ReplicationFactor: 1, RetentionMs: 7 * day},
		{Name: TopicComputed, NumPartitions: 6, ReplicationFactor: 1, RetentionMs: 7 * day},
		{Name: TopicComputeDLQ, NumPartitions: 3, ReplicationFactor: 1, RetentionMs: 30 * day},
	}
}
