package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// ErrProducerClosed is returned by publish calls after Close.
var ErrProducerClosed = errors.New(errors.ErrCodePublishFailed, "producer closed")

// ProducerConfig holds configuration for the Producer.
type ProducerConfig struct {
	Brokers         []string
	Acks            string // "none" | "one" | "all"
	MaxRetries      int
	BatchSize       int
	BatchTimeout    time.Duration
	MaxMessageBytes int
	Compression     string // "" | "gzip" | "snappy" | "lz4" | "zstd"
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
}

// ValidateProducerConfig rejects configurations the writer cannot start with.
func ValidateProducerConfig(cfg ProducerConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if cfg.MaxRetries < 0 {
		return errors.New(errors.ErrCodeValidation, "max retries must not be negative")
	}
	return nil
}

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
	Stats() kafka.WriterStats
}

// Producer publishes compute events, keyed so retries of the same event
// land on the same partition.
type Producer struct {
	writer  WriterInterface
	config  ProducerConfig
	logger  logging.Logger
	metrics *prometheus.AppMetrics
	closed  atomic.Bool

	sent   atomic.Int64
	failed atomic.Int64
}

// NewProducer builds a producer over a hash-balanced writer. The metrics
// recorder may be nil in tests and tools.
func NewProducer(cfg ProducerConfig, logger logging.Logger, metrics *prometheus.AppMetrics) (*Producer, error) {
	if err := ValidateProducerConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = time.Second
	}
	if cfg.MaxMessageBytes == 0 {
		cfg.MaxMessageBytes = 1024 * 1024
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}

	var requiredAcks kafka.RequiredAcks
	switch cfg.Acks {
	case "none":
		requiredAcks = kafka.RequireNone
	case "all":
		requiredAcks = kafka.RequireAll
	default:
		requiredAcks = kafka.RequireOne
	}

	var compression kafka.Compression
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "snappy":
		compression = kafka.Snappy
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.MaxRetries + 1,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		RequiredAcks: requiredAcks,
		Compression:  compression,
		Transport:    &kafka.Transport{DialTimeout: 10 * time.Second},
	}

	return &Producer{
		writer:  writer,
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// NewProducerWithWriter injects a writer, for tests.
func NewProducerWithWriter(writer WriterInterface, cfg ProducerConfig, logger logging.Logger, metrics *prometheus.AppMetrics) *Producer {
	if cfg.MaxMessageBytes == 0 {
		cfg.MaxMessageBytes = 1024 * 1024
	}
	return &Producer{writer: writer, config: cfg, logger: logger, metrics: metrics}
}

// Publish writes one message and waits for the broker acknowledgment.
func (p *Producer) Publish(ctx context.Context, msg *ProducerMessage) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if msg.Topic == "" {
		return errors.New(errors.ErrCodeValidation, "message topic required")
	}
	if len(msg.Value) == 0 {
		return errors.New(errors.ErrCodeValidation, "message value required")
	}
	if len(msg.Value) > p.config.MaxMessageBytes {
		return errors.New(errors.ErrCodeValidation, "message exceeds the size limit").
			WithDetailf("topic=%s bytes=%d limit=%d", msg.Topic, len(msg.Value), p.config.MaxMessageBytes)
	}

	start := time.Now()
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg))
	p.record(msg.Topic, err)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePublishFailed, "failed to publish message").
			WithDetail("topic=" + msg.Topic)
	}

	p.logger.Debug("message published",
		logging.String("topic", msg.Topic),
		logging.Duration("latency", time.Since(start)))
	return nil
}

// PublishBatch writes several messages in one round trip and reports the
// per-message outcome.
func (p *Producer) PublishBatch(ctx context.Context, msgs []*ProducerMessage) (*BatchPublishResult, error) {
	if p.closed.Load() {
		return nil, ErrProducerClosed
	}
	if len(msgs) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "message batch must not be empty")
	}

	kMsgs := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		kMsgs[i] = toKafkaMessage(msg)
	}

	result := &BatchPublishResult{}
	err := p.writer.WriteMessages(ctx, kMsgs...)
	switch writeErrs := err.(type) {
	case nil:
		result.Succeeded = len(msgs)
	case kafka.WriteErrors:
		for i, we := range writeErrs {
			if we != nil {
				result.Failed++
				result.Errors = append(result.Errors, BatchPublishError{Index: i, Topic: msgs[i].Topic, Err: we})
			} else {
				result.Succeeded++
			}
		}
	default:
		result.Failed = len(msgs)
		result.Errors = append(result.Errors, BatchPublishError{Index: -1, Err: err})
	}

	p.sent.Add(int64(result.Succeeded))
	p.failed.Add(int64(result.Failed))
	if p.metrics != nil {
		for _, msg := range msgs {
			// Per-topic status is approximated from the batch outcome.
			var batchErr error
			if result.Failed > 0 {
				batchErr = err
			}
			p.metrics.RecordPublish(msg.Topic, batchErr)
		}
	}

	p.logger.Info("batch published",
		logging.Int("succeeded", result.Succeeded),
		logging.Int("failed", result.Failed))
	return result, nil
}

// Sent returns the number of successfully published messages.
func (p *Producer) Sent() int64 {
	return p.sent.Load()
}

// Failed returns the number of failed publish attempts.
func (p *Producer) Failed() int64 {
	return p.failed.Load()
}

// Close flushes and shuts down the writer. Further publishes fail with
// ErrProducerClosed.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("kafka producer closed", logging.Int64("sent", p.sent.Load()))
	return err
}

func (p *Producer) record(topic string, err error) {
	if err != nil {
		p.failed.Add(1)
	} else {
		p.sent.Add(1)
	}
	if p.metrics != nil {
		p.metrics.RecordPublish(topic, err)
	}
}

func toKafkaMessage(msg *ProducerMessage) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return kafka.Message{
		Topic:   msg.Topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    ts,
	}
}
