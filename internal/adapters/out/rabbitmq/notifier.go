package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bakery/internal/core/ports"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of Client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

// Envelope is the JSON body of every published notification.
type Envelope struct {
	ID         string         `json:"id"`
	Event      string         `json:"event"`
	UserID     int64          `json:"user_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Notifier implements ports.Notifier. The routing key is the event name, so
// consumers can bind to patterns such as "order.*".
type Notifier struct {
	publisher Publisher
	exchange  string
	timeout   time.Duration
}

func NewNotifier(publisher Publisher, exchange string) *Notifier {
	return &Notifier{publisher: publisher, exchange: exchange, timeout: 5 * time.Second}
}

func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) error {
	env := Envelope{
		ID:         uuid.NewString(),
		Event:      string(notification.Event),
		UserID:     notification.UserID.Int64(),
		Payload:    notification.Payload,
		OccurredAt: notification.OccurredAt.UTC(),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s notification: %w", env.Event, err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	return n.publisher.Publish(ctx, n.exchange, env.Event, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   env.ID,
		Timestamp:   env.OccurredAt,
		Headers:     amqp.Table{"user_id": env.UserID},
		Body:        body,
	})
}
