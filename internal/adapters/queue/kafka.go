package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"conferencehall/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaQueue publishes notification emails to a Kafka topic, keyed by proposal id.
type KafkaQueue struct {
	writer messageWriter
	topic  string
}

// NewKafkaQueue returns a NotificationQueue writing to topic. Writes wait for all in-sync replicas.
func NewKafkaQueue(brokers []string, topic string) (*KafkaQueue, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka queue requires at least one broker")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka queue requires a topic")
	}
	return &KafkaQueue{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
		},
		topic: topic,
	}, nil
}

func (q *KafkaQueue) Enqueue(ctx context.Context, msg *domain.EmailMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode email %s: %w", msg.ID, err)
	}
	return q.writer.WriteMessages(ctx, kafka.Message{
		Topic: q.topic,
		Key:   []byte(msg.ProposalID),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

func (q *KafkaQueue) Close() error {
	return q.writer.Close()
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Handler processes one decoded notification email.
type Handler func(ctx context.Context, msg *domain.EmailMessage) error

// KafkaConsumerConfig configures a KafkaConsumer.
type KafkaConsumerConfig struct {
	Brokers     []string
	GroupID     string
	Topic       string
	MaxAttempts int
	Backoff     time.Duration
}

// KafkaConsumer reads notification emails from a topic in a consumer group.
// An offset is committed once its message was handled or gave up after MaxAttempts.
type KafkaConsumer struct {
	reader      messageReader
	maxAttempts int
	backoff     time.Duration
	logger      *slog.Logger
}

// NewKafkaConsumer returns a consumer for cfg.Topic.
func NewKafkaConsumer(cfg KafkaConsumerConfig, logger *slog.Logger) (*KafkaConsumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer requires at least one broker")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("kafka consumer requires group id")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka consumer requires a topic")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return newKafkaConsumer(reader, cfg.MaxAttempts, cfg.Backoff, logger), nil
}

func newKafkaConsumer(reader messageReader, maxAttempts int, backoff time.Duration, logger *slog.Logger) *KafkaConsumer {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &KafkaConsumer{
		reader:      reader,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		logger:      logger.With("component", "kafka_consumer"),
	}
}

// Run consumes until ctx is cancelled.
func (c *KafkaConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}
		c.process(ctx, m, handle)
		if ctx.Err() != nil {
			return nil
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset %d: %w", m.Offset, err)
		}
	}
}

func (c *KafkaConsumer) process(ctx context.Context, m kafka.Message, handle Handler) {
	msg := &domain.EmailMessage{}
	if err := json.Unmarshal(m.Value, msg); err != nil {
		c.logger.ErrorContext(ctx, "dropping undecodable message",
			"partition", m.Partition, "offset", m.Offset, "error", err)
		return
	}
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		msg.Attempts = attempt
		err := handle(ctx, msg)
		if err == nil {
			return
		}
		if attempt == c.maxAttempts {
			c.logger.ErrorContext(ctx, "email gave up after max attempts",
				"email_id", msg.ID, "attempts", attempt, "error", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
