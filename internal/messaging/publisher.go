// Package messaging publishes marketplace domain events.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher sends an event to a topic, keyed by aggregate id
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

// OrderPlaced is emitted after checkout
type OrderPlaced struct {
	OrderID       string              `json:"orderId"`
	VendorID      string              `json:"vendorId"`
	SupplierID    string              `json:"supplierId"`
	Items         []model.OrderItem   `json:"items"`
	Total         float64             `json:"total"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	PlacedAt      time.Time           `json:"placedAt"`
}

// OrderStatusChanged is emitted after every applied transition
type OrderStatusChanged struct {
	OrderID   string            `json:"orderId"`
	From      model.OrderStatus `json:"from"`
	To        model.OrderStatus `json:"to"`
	ChangedBy string            `json:"changedBy"`
	ChangedAt time.Time         `json:"changedAt"`
}

// FSSAIReportSubmitted is emitted when a vendor files a report
type FSSAIReportSubmitted struct {
	ReportID     string         `json:"reportId"`
	ReportNumber string         `json:"reportNumber"`
	OrderID      string         `json:"orderId"`
	VendorID     string         `json:"vendorId"`
	SupplierID   string         `json:"supplierId"`
	Severity     model.Severity `json:"severity"`
	SubmittedAt  time.Time      `json:"submittedAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON events to Kafka through one shared writer
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher for the given brokers. The topic is
// chosen per message. A positive timeout caps each publish so an unreachable
// broker cannot hold up the caller.
func NewKafkaPublisher(brokers []string, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           timeout,
			MaxAttempts:            3,
		},
		timeout: timeout,
	}
}

func (p *KafkaPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher logs events instead of sending them. Used when no brokers
// are configured.
type LogPublisher struct {
	log *zap.Logger
}

var _ Publisher = (*LogPublisher)(nil)

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	p.log.Info("Domain event",
		zap.String("topic", topic),
		zap.String("key", key),
		zap.ByteString("payload", payload),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
