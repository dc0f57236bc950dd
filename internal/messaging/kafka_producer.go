package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// StockEvent mirrors a committed stock movement for downstream consumers
// (reporting, sync jobs). Quantities are signed per product: negative means
// units left the shelf.
type StockEvent struct {
	Type          string         `json:"type"` // e.g. "stock.reserved", "stock.released"
	TransactionID string         `json:"transaction_id,omitempty"`
	Deltas        map[string]int `json:"deltas"` // productID -> quantity delta
	Actor         string         `json:"actor,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

type StockEventProducer interface {
	PublishStockEvent(ctx context.Context, event *StockEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) StockEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) PublishStockEvent(ctx context.Context, event *StockEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stock event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: payload,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish stock event: %w", err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer is used when no broker is configured.
type NopProducer struct{}

func (NopProducer) PublishStockEvent(ctx context.Context, event *StockEvent) error { return nil }
func (NopProducer) Close() error                                                   { return nil }
