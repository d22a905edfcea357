package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier appends notifications to a topic keyed by recipient
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier creates a writer for the given brokers and topic
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Notify writes one message
func (n *KafkaNotifier) Notify(ctx context.Context, note Notification) error {
	msg, err := kafkaMessage(note)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func kafkaMessage(note Notification) (kafka.Message, error) {
	payload, err := json.Marshal(note)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode notification: %w", err)
	}

	return kafka.Message{
		Key:   []byte(note.Recipient),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(note.Kind)},
		},
	}, nil
}
