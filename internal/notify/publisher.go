// Package notify delivers notification intents to the messaging broker.
// Delivery is best-effort by contract: callers log failures and move on.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

// Publisher publishes notification intents to a RabbitMQ topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   logx.Logger

	mu sync.Mutex // amqp channels are not safe for concurrent publish
}

// Dial connects to RabbitMQ and declares the notifications exchange.
func Dial(url, exchange string, logger logx.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// Notify publishes one notification intent. The routing key carries the
// notification type so consumers can bind per channel (push, WhatsApp).
func (p *Publisher) Notify(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(toMessage(n))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey(n),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func routingKey(n domain.Notification) string {
	return "notify." + n.Type
}

type message struct {
	UserID  int64  `json:"user_id"`
	OrderID int64  `json:"order_id,omitempty"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func toMessage(n domain.Notification) message {
	return message{
		UserID:  n.UserID,
		OrderID: n.OrderID,
		Title:   n.Title,
		Message: n.Message,
		Type:    n.Type,
	}
}

// NopNotifier drops every intent. Used when no broker is configured.
type NopNotifier struct{}

// Notify discards the notification.
func (NopNotifier) Notify(context.Context, domain.Notification) error { return nil }
