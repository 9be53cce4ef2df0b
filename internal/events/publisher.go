package events

import (
	"context"
	"encoding/json"
	"fmt"
	"storefront-be/internal/logger"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status_changed"

	publishTimeout = 5 * time.Second
	batchTimeout   = 10 * time.Millisecond
)

// Publisher emits domain events after the owning transaction has committed.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	prefix  string
	timeout time.Duration
}

// New returns a Kafka publisher, or a NopPublisher when no brokers are set.
func New(brokers []string, prefix string) Publisher {
	if len(brokers) == 0 {
		logger.L().Info("kafka brokers not configured, domain events disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, prefix)
}

func NewKafkaPublisher(brokers []string, prefix string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           batchTimeout,
		MaxAttempts:            3,
		WriteBackoffMin:        100 * time.Millisecond,
		WriteBackoffMax:        time.Second,
	}

	logger.L().Info("kafka publisher created", zap.Strings("brokers", brokers), zap.String("prefix", prefix))
	return &KafkaPublisher{writer: w, prefix: prefix, timeout: publishTimeout}
}

// Publish writes one event. The write is detached from ctx cancellation so a
// client hanging up after commit does not drop the event; it is bounded by
// the publisher timeout instead.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "events"),
		zap.String("topic", topic),
		zap.String("key", key),
	)

	msg, err := newMessage(p.prefix, topic, key, payload)
	if err != nil {
		return err
	}

	timeout := p.timeout
	if timeout <= 0 {
		timeout = publishTimeout
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		log.Error("failed to publish event", zap.Error(err))
		return err
	}

	log.Debug("event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(prefix, topic, key string, payload any) (kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	if prefix != "" {
		topic = prefix + "." + topic
	}

	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}, nil
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
