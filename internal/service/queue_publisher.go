// Package service holds outbound integrations used by the HTTP handlers.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/author-service/internal/queue"
)

// Publisher sends domain events to RabbitMQ. Each publish opens its own
// connection; registration traffic is low enough that pooling is not needed.
type Publisher struct {
	URL string
}

func NewPublisher(url string) *Publisher {
	return &Publisher{URL: url}
}

// PublishAuthorRegistered publishes ev to the author.registered queue as a
// persistent JSON message. Failures are returned, not logged; the caller
// decides how loud they are.
func (p *Publisher) PublishAuthorRegistered(ctx context.Context, ev queue.AuthorRegisteredEvent) error {
	if err := p.publish(ctx, queue.AuthorRegisteredQueue, ev); err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", queue.AuthorRegisteredQueue, err)
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, queueName string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
