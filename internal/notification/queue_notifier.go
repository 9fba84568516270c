package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ferdiebergado/accountkit/internal/auth"
	"github.com/ferdiebergado/accountkit/internal/platform/queue"
)

// QueueNotifier hands notifications to the broker. A Worker mails them.
type QueueNotifier struct {
	publisher queue.Publisher
}

var _ auth.Notifier = (*QueueNotifier)(nil)

func NewQueueNotifier(publisher queue.Publisher) *QueueNotifier {
	return &QueueNotifier{publisher: publisher}
}

func (q *QueueNotifier) SendConfirmation(ctx context.Context, n auth.Notification) error {
	return q.publish(ctx, KindConfirmation, n)
}

func (q *QueueNotifier) SendPasswordReset(ctx context.Context, n auth.Notification) error {
	return q.publish(ctx, KindPasswordReset, n)
}

func (q *QueueNotifier) publish(ctx context.Context, kind string, n auth.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode %s notification: %w", kind, err)
	}

	msg := queue.Message{
		ID:   uuid.NewString(),
		Type: kind,
		Body: body,
	}
	if err := q.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s notification: %w", kind, err)
	}
	return nil
}
