package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// ReminderEvent is the AMQP message body.
type ReminderEvent struct {
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// AMQPSink publishes reminders to a RabbitMQ topic exchange.
type AMQPSink struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
}

// NewAMQPSink dials url and declares a durable topic exchange.
func NewAMQPSink(url, exchange, routingKey string) (*AMQPSink, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPSink{conn: conn, channel: ch, exchange: exchange, routingKey: routingKey}, nil
}

func (s *AMQPSink) Send(ctx context.Context, message string) error {
	body, err := json.Marshal(ReminderEvent{Text: message, SentAt: time.Now()})
	if err != nil {
		return err
	}
	return s.channel.PublishWithContext(ctx,
		s.exchange,
		s.routingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
		},
	)
}

// Close closes the channel and connection.
func (s *AMQPSink) Close() error {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
