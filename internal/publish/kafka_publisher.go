package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes every execution to a Kafka topic, keyed by market
// id so consumers can partition per market and preserve ordering within
// one book's executions.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a KafkaPublisher over brokers writing to topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, exec Execution) error {
	payload, err := json.Marshal(exec)
	if err != nil {
		return fmt.Errorf("publish: marshal execution: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(exec.MarketID),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
