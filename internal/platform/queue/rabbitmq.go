package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ferdiebergado/accountkit/internal/config"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrMissingURL      = errors.New("queue: AMQP_URL is not set")
	ErrDeliveriesEnded = errors.New("queue: delivery channel closed")
)

const contentTypeJSON = "application/json"

// RabbitMQ publishes to and consumes from a single durable queue through the
// default exchange.
type RabbitMQ struct {
	conn        *amqp.Connection
	mu          sync.Mutex
	ch          *amqp.Channel
	queue       string
	consumerTag string
}

var (
	_ Publisher = (*RabbitMQ)(nil)
	_ Consumer  = (*RabbitMQ)(nil)
)

func Dial(cfg *config.Queue) (*RabbitMQ, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrMissingURL
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if cfg.Prefetch > 0 {
		if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("set prefetch %d: %w", cfg.Prefetch, err)
		}
	}

	if _, err := ch.QueueDeclare(cfg.Name, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", cfg.Name, err)
	}

	slog.Info("Connected to the message broker.", "queue", cfg.Name)

	return &RabbitMQ{
		conn:        conn,
		ch:          ch,
		queue:       cfg.Name,
		consumerTag: cfg.ConsumerTag,
	}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ch.PublishWithContext(ctx, "", r.queue, false, false, toPublishing(msg)); err != nil {
		return fmt.Errorf("publish %s message to %q: %w", msg.Type, r.queue, err)
	}
	return nil
}

// Consume blocks until ctx is done or the broker closes the delivery channel.
// A message is acked when handler succeeds. A failed message is requeued once
// and dropped on its second failure.
func (r *RabbitMQ) Consume(ctx context.Context, handler Handler) error {
	deliveries, err := r.ch.ConsumeWithContext(ctx, r.queue, r.consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %q: %w", r.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesEnded
			}

			msg := fromDelivery(d)
			if err := handler(ctx, msg); err != nil {
				slog.Error("failed to handle message", "id", msg.ID, "type", msg.Type, "redelivered", d.Redelivered, "reason", err)
				if nackErr := d.Nack(false, !d.Redelivered); nackErr != nil {
					slog.Error("failed to nack message", "id", msg.ID, "reason", nackErr)
				}
				continue
			}

			if err := d.Ack(false); err != nil {
				slog.Error("failed to ack message", "id", msg.ID, "reason", err)
			}
		}
	}
}

func (r *RabbitMQ) Close() error {
	var errs []error
	if r.ch != nil {
		errs = append(errs, r.ch.Close())
	}
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
	}
	return errors.Join(errs...)
}

func toPublishing(msg Message) amqp.Publishing {
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}

	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    id,
		Type:         msg.Type,
		Timestamp:    time.Now(),
		Body:         msg.Body,
	}
}

func fromDelivery(d amqp.Delivery) Message {
	return Message{
		ID:   d.MessageId,
		Type: d.Type,
		Body: d.Body,
	}
}
