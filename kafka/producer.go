package kafka

import (
	"context"
	"encoding/json"
	"time"

	"storefront-backend/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ProducerAPI is the producer surface the services depend on. Tests swap in
// a recording fake.
type ProducerAPI interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, orderID, status string) error
	Close() error
}

// Producer publishes order events to a Kafka topic. Order events are
// best-effort: a nil Producer is a disabled one, and every publish on it is
// a no-op, so the service runs unchanged when no brokers are configured.
type Producer struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	logger.Info("Kafka producer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
	)
	return &Producer{writer: w, topic: topic, logger: logger}
}

func (p *Producer) publish(ctx context.Context, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
}

// PublishOrderCreated emits an order_created event keyed by order id.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	if p == nil || p.writer == nil {
		return nil
	}
	event := models.OrderCreatedEvent{
		EventType:     "order_created",
		OrderID:       order.ID.String(),
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		Total:         order.Total.String(),
		ItemCount:     len(order.Items),
		Timestamp:     time.Now(),
	}
	if err := p.publish(ctx, event.OrderID, event); err != nil {
		p.logger.Error("Failed to publish order_created",
			zap.String("order_number", event.OrderNumber),
			zap.Error(err),
		)
		return err
	}
	p.logger.Info("Published order_created", zap.String("order_number", event.OrderNumber))
	return nil
}

// PublishOrderStatusChanged emits an order_status_changed event keyed by
// order id.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID, status string) error {
	if p == nil || p.writer == nil {
		return nil
	}
	event := models.OrderStatusChangedEvent{
		EventType: "order_status_changed",
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now(),
	}
	if err := p.publish(ctx, orderID, event); err != nil {
		p.logger.Error("Failed to publish order_status_changed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return err
	}
	p.logger.Info("Published order_status_changed",
		zap.String("order_id", orderID),
		zap.String("status", status),
	)
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	p.logger.Info("Closing Kafka producer", zap.String("topic", p.topic))
	return p.writer.Close()
}
