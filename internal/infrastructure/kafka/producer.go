package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer}
}

// Publish writes event keyed by key. Events sharing a key land on the same partition.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

// PublishEvent wraps data in an Event envelope keyed by aggregateID and publishes it
func (p *Producer) PublishEvent(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (Event, error) {
	event, err := NewEvent(aggregateID, aggregateType, eventType, data)
	if err != nil {
		return Event{}, err
	}
	return event, p.Publish(ctx, aggregateID, event)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
