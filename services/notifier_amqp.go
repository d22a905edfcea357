package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPNotifier publishes notifications to a fanout exchange consumed by the mailer
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
}

// NewAMQPNotifier dials the broker and declares a durable fanout exchange
func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange}, nil
}

// Notify publishes one persistent JSON message
func (n *AMQPNotifier) Notify(ctx context.Context, note Notification) error {
	msg, err := amqpPublishing(note)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ch.PublishWithContext(ctx, n.exchange, note.Kind, false, false, msg)
}

// Close releases the channel and connection
func (n *AMQPNotifier) Close() error {
	if n == nil {
		return nil
	}
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

func amqpPublishing(note Notification) (amqp.Publishing, error) {
	body, err := json.Marshal(note)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode notification: %w", err)
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         note.Kind,
		Timestamp:    note.CreatedAt,
		Body:         body,
	}, nil
}
