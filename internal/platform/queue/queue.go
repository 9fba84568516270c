package queue

import "context"

// Message is a unit of work exchanged through the broker.
type Message struct {
	ID   string
	Type string
	Body []byte
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Handler processes a delivered message. A non-nil error rejects the message.
type Handler func(ctx context.Context, msg Message) error

type Consumer interface {
	Consume(ctx context.Context, handler Handler) error
}
