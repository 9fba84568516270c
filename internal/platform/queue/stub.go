package queue

import (
	"context"
	"errors"
)

type StubPublisher struct {
	PublishFunc func(ctx context.Context, msg Message) error
}

var _ Publisher = (*StubPublisher)(nil)

func (s *StubPublisher) Publish(ctx context.Context, msg Message) error {
	if s.PublishFunc == nil {
		return errors.New("Publish not implemented by stub")
	}
	return s.PublishFunc(ctx, msg)
}

type StubConsumer struct {
	ConsumeFunc func(ctx context.Context, handler Handler) error
}

var _ Consumer = (*StubConsumer)(nil)

func (s *StubConsumer) Consume(ctx context.Context, handler Handler) error {
	if s.ConsumeFunc == nil {
		return errors.New("Consume not implemented by stub")
	}
	return s.ConsumeFunc(ctx, handler)
}
