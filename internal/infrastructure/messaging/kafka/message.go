// Package kafka carries descriptor compute jobs between the API server and
// the worker fleet. Producers publish enveloped events, consumers dispatch
// them to per-topic handlers with bounded retries and a dead letter topic
// for messages that keep failing.
package kafka

import (
	"context"
	"time"
)

// Message is one consumed Kafka record, decoupled from the client library
// so handlers stay testable.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// ProducerMessage is one record to publish.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// MessageHandler processes one consumed message. A nil return commits the
// offset; an error triggers the consumer's retry and dead-letter flow.
type MessageHandler func(ctx context.Context, msg *Message) error

// BatchPublishResult reports the per-message outcome of a batch publish.
type BatchPublishResult struct {
	Succeeded int
	Failed    int
	Errors    []BatchPublishError
}

// BatchPublishError pins a publish failure to its position in the batch.
// Index is -1 when the whole batch failed at once.
type BatchPublishError struct {
	Index int
	Topic string
	Err   error
}
