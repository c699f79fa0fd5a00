// Package amqp publishes due-date reminders on a RabbitMQ queue for external
// delivery workers (mail, SMS). Enabled only when AMQP_URL is configured;
// without it the notification component falls back to log-only sending.
package amqp

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shelftrack/shelftrack-api/internal/application/notification"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
)

var _ notification.Sender = (*Publisher)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// reminderPayload is the wire shape consumed by delivery workers.
type reminderPayload struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	BorrowRecordID string    `json:"borrow_record_id"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sent_at"`
}

// Publisher sends reminders to a RabbitMQ queue.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewPublisher dials the broker and declares the durable reminder queue.
func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	return &Publisher{conn: conn, channel: ch, queue: queue}, nil
}

// Send publishes one reminder.
func (p *Publisher) Send(ctx context.Context, n *entity.Notification) error {
	body, err := json.Marshal(reminderPayload{
		NotificationID: n.ID,
		UserID:         n.UserID,
		BorrowRecordID: n.BorrowRecordID,
		Message:        n.Message,
		SentAt:         n.SentAt,
	})
	if err != nil {
		return fmt.Errorf("encode reminder: %w", err)
	}
	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish reminder: %w", err)
	}
	return nil
}

// Close tears down the channel and connection.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
