// Package events publishes ledger events to RabbitMQ. Publishing is best
// effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// RulesExpandedQueue receives one message per successful expansion.
const RulesExpandedQueue = "ledger.rules_expanded"

// RulesExpanded is emitted after recurring rules were expanded for a month.
type RulesExpanded struct {
	UserID     uint      `json:"user_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Generated  int       `json:"generated"`
	ExpandedAt time.Time `json:"expanded_at"`
}

// Publisher sends ledger events.
type Publisher interface {
	PublishRulesExpanded(ctx context.Context, ev RulesExpanded) error
}

// NewPublisher returns an AMQP publisher for url, or a no-op one when url
// is empty.
func NewPublisher(url string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{url: url}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishRulesExpanded(context.Context, RulesExpanded) error { return nil }

// AMQPPublisher dials the broker per message; expansions are rare enough
// that a pooled connection is not needed.
type AMQPPublisher struct {
	url string
}

func (p *AMQPPublisher) PublishRulesExpanded(ctx context.Context, ev RulesExpanded) error {
	msg, err := encode(ev, ev.ExpandedAt)
	if err != nil {
		return err
	}
	return p.publish(ctx, RulesExpandedQueue, msg)
}

func encode(v any, ts time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Timestamp:    ts.UTC(),
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, msg amqp.Publishing) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq declare %s: %w", queue, err)
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", queue, err)
	}
	logrus.WithFields(logrus.Fields{
		"queue": queue,
		"bytes": len(msg.Body),
	}).Debug("Event published")
	return nil
}
