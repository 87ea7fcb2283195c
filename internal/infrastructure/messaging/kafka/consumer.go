package kafka

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// ErrAlreadyRunning is returned by Start when the consume loop is live.
var ErrAlreadyRunning = errors.New(errors.ErrCodeConflict, "consumer already running")

// RetryConfig bounds how often a failing message is retried before it is
// shipped to the dead letter topic (or dropped when no topic is set).
type RetryConfig struct {
	MaxRetries      int
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
	DeadLetterTopic string
}

// ConsumerConfig holds configuration for the Consumer.
type ConsumerConfig struct {
	Brokers         []string
	GroupID         string
	Topics          []string
	AutoOffsetReset string // "earliest" | "latest"
	SessionTimeout  time.Duration
	FetchMinBytes   int
	FetchMaxBytes   int
	Retry           RetryConfig
}

// ValidateConsumerConfig rejects configurations the reader cannot start with.
func ValidateConsumerConfig(cfg ConsumerConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if cfg.GroupID == "" {
		return errors.New(errors.ErrCodeValidation, "consumer group id required")
	}
	if cfg.AutoOffsetReset != "" && cfg.AutoOffsetReset != "earliest" && cfg.AutoOffsetReset != "latest" {
		return errors.New(errors.ErrCodeValidation, "auto offset reset must be earliest or latest").
			WithDetail("value=" + cfg.AutoOffsetReset)
	}
	if cfg.Retry.MaxRetries < 0 {
		return errors.New(errors.ErrCodeValidation, "max retries must not be negative")
	}
	return nil
}

// ReaderInterface abstracts kafka.Reader for testing.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
	Stats() kafka.ReaderStats
}

// Consumer runs a consume loop over the configured topics, dispatching each
// record to the handler registered for its topic. Offsets are committed
// once the handler (or the dead letter flow) has disposed of the message,
// so a crash replays at-least-once rather than losing work.
type Consumer struct {
	reader  ReaderInterface
	config  ConsumerConfig
	logger  logging.Logger
	metrics *prometheus.AppMetrics

	handlers map[string]MessageHandler
	mu       sync.RWMutex

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	deadLetterProducer *Producer

	consumed     atomic.Int64
	processed    atomic.Int64
	failed       atomic.Int64
	deadLettered atomic.Int64
}

// NewConsumer builds a consumer group reader; when a dead letter topic is
// configured, a dedicated producer over the same brokers ships failures
// there. The metrics recorder may be nil.
func NewConsumer(cfg ConsumerConfig, logger logging.Logger, metrics *prometheus.AppMetrics) (*Consumer, error) {
	if err := ValidateConsumerConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.AutoOffsetReset == "" {
		cfg.AutoOffsetReset = "earliest"
	}
	if cfg.SessionTimeout == 0 {
		cfg.SessionTimeout = 30 * time.Second
	}
	if cfg.FetchMinBytes == 0 {
		cfg.FetchMinBytes = 1
	}
	if cfg.FetchMaxBytes == 0 {
		cfg.FetchMaxBytes = 10 * 1024 * 1024
	}

	startOffset := kafka.FirstOffset
	if cfg.AutoOffsetReset == "latest" {
		startOffset = kafka.LastOffset
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		GroupTopics:    cfg.Topics,
		MinBytes:       cfg.FetchMinBytes,
		MaxBytes:       cfg.FetchMaxBytes,
		SessionTimeout: cfg.SessionTimeout,
		StartOffset:    startOffset,
		Dialer:         &kafka.Dialer{Timeout: 10 * time.Second, DualStack: true},
	})

	var dlProducer *Producer
	if cfg.Retry.DeadLetterTopic != "" {
		p, err := NewProducer(ProducerConfig{Brokers: cfg.Brokers}, logger, metrics)
		if err != nil {
			reader.Close()
			return nil, err
		}
		dlProducer = p
	}

	return &Consumer{
		reader:             reader,
		config:             cfg,
		logger:             logger,
		metrics:            metrics,
		handlers:           make(map[string]MessageHandler),
		deadLetterProducer: dlProducer,
	}, nil
}

// NewConsumerWithReader injects a reader and dead letter producer, for tests.
func NewConsumerWithReader(reader ReaderInterface, cfg ConsumerConfig, logger logging.Logger, metrics *prometheus.AppMetrics, dlq *Producer) *Consumer {
	return &Consumer{
		reader:             reader,
		config:             cfg,
		logger:             logger,
		metrics:            metrics,
		handlers:           make(map[string]MessageHandler),
		deadLetterProducer: dlq,
	}
}

// Subscribe registers the handler for one topic, replacing any previous one.
func (c *Consumer) Subscribe(topic string, handler MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = handler
	c.logger.Info("subscribed to topic", logging.String("topic", topic))
}

// Unsubscribe drops the handler for one topic.
func (c *Consumer) Unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, topic)
	c.logger.Info("unsubscribed from topic", logging.String("topic", topic))
}

// Start launches the consume loop. It returns immediately; the loop runs
// until Close or context cancellation.
func (c *Consumer) Start(ctx context.Context) error {
	if c.running.Swap(true) {
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	go c.consumeLoop(ctx)

	c.logger.Info("kafka consumer started",
		logging.String("group", c.config.GroupID),
		logging.Strings("topics", c.config.Topics))
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("fetch message failed", logging.Err(err))
			time.Sleep(time.Second)
			continue
		}

		c.consumed.Add(1)
		msg := fromKafkaMessage(m)

		c.mu.RLock()
		handler, ok := c.handlers[m.Topic]
		c.mu.RUnlock()

		if !ok {
			c.logger.Warn("no handler for topic", logging.String("topic", m.Topic))
			c.commit(ctx, m)
			continue
		}

		start := time.Now()
		err = c.processMessage(ctx, msg, handler)
		if c.metrics != nil {
			c.metrics.RecordConsume(m.Topic, time.Since(start), err)
		}
		if err != nil {
			// Context cancellation mid-retry: leave the offset uncommitted
			// so another group member picks the message up.
			if ctx.Err() != nil {
				return
			}
			c.failed.Add(1)
			continue
		}
		c.processed.Add(1)
		c.commit(ctx, m)
	}
}

func (c *Consumer) commit(ctx context.Context, m kafka.Message) {
	if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
		c.logger.Error("offset commit failed",
			logging.String("topic", m.Topic),
			logging.Int64("offset", m.Offset),
			logging.Err(err))
	}
}

// processMessage runs the handler with bounded exponential-backoff retries.
// When retries are exhausted the message goes to the dead letter topic and
// nil is returned so the offset advances; the error comes back only when
// even dead-lettering failed or the context was cancelled.
func (c *Consumer) processMessage(ctx context.Context, msg *Message, handler MessageHandler) error {
	err := handler(ctx, msg)
	if err == nil {
		return nil
	}

	maxRetries := c.config.Retry.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}
	backoff := c.config.Retry.RetryBackoff
	if backoff == 0 {
		backoff = time.Second
	}
	maxBackoff := c.config.Retry.MaxRetryBackoff
	if maxBackoff == 0 {
		maxBackoff = 30 * time.Second
	}

	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		if err = handler(ctx, msg); err == nil {
			return nil
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	c.logger.Error("message processing failed after retries",
		logging.String("topic", msg.Topic),
		logging.Int64("offset", msg.Offset),
		logging.Int("retries", maxRetries),
		logging.Err(err))

	return c.deadLetter(ctx, msg, err)
}

func (c *Consumer) deadLetter(ctx context.Context, msg *Message, cause error) error {
	if c.deadLetterProducer == nil || c.config.Retry.DeadLetterTopic == "" {
		c.logger.Warn("dropping message without dead letter topic",
			logging.String("topic", msg.Topic),
			logging.Int64("offset", msg.Offset))
		return nil
	}

	headers := make(map[string]string, len(msg.Headers)+2)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers["original_topic"] = msg.Topic
	headers["error_message"] = cause.Error()
	if code := errors.GetCode(cause); code != errors.CodeUnknown {
		headers["error_code"] = code.String()
	}

	dlMsg := &ProducerMessage{
		Topic:   c.config.Retry.DeadLetterTopic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}
	if err := c.deadLetterProducer.Publish(ctx, dlMsg); err != nil {
		c.logger.Error("dead letter publish failed", logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeConsumeFailed, "failed to dead-letter message").
			WithDetail("topic=" + msg.Topic)
	}
	c.deadLettered.Add(1)
	if c.metrics != nil {
		c.metrics.RecordDeadLetter(msg.Topic, errors.GetCode(cause).String())
	}
	return nil
}

// Consumed returns the number of fetched messages.
func (c *Consumer) Consumed() int64 { return c.consumed.Load() }

// Processed returns the number of successfully handled messages.
func (c *Consumer) Processed() int64 { return c.processed.Load() }

// DeadLettered returns the number of messages shipped to the DLQ.
func (c *Consumer) DeadLettered() int64 { return c.deadLettered.Load() }

// Close stops the consume loop and releases the reader and the dead letter
// producer.
func (c *Consumer) Close() error {
	if !c.running.CompareAndSwap(true, false) {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	err := c.reader.Close()
	if c.deadLetterProducer != nil {
		c.deadLetterProducer.Close()
	}
	c.logger.Info("kafka consumer closed", logging.Int64("consumed", c.consumed.Load()))
	return err
}

func fromKafkaMessage(m kafka.Message) *Message {
	msg := &Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Timestamp: m.Time,
		Headers:   make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
