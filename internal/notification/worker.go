package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/accountkit/internal/auth"
	"github.com/ferdiebergado/accountkit/internal/platform/metrics"
	"github.com/ferdiebergado/accountkit/internal/platform/queue"
)

// Deliverer sends one notification synchronously.
type Deliverer interface {
	Deliver(kind string, n auth.Notification) error
}

// Worker drains queued notifications and mails them.
type Worker struct {
	consumer  queue.Consumer
	deliverer Deliverer
	recorder  metrics.Recorder
}

func NewWorker(consumer queue.Consumer, deliverer Deliverer, recorder metrics.Recorder) *Worker {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	return &Worker{
		consumer:  consumer,
		deliverer: deliverer,
		recorder:  recorder,
	}
}

// Run consumes until ctx is cancelled. Cancellation is a clean stop.
func (w *Worker) Run(ctx context.Context) error {
	slog.Info("Notification worker started.")
	err := w.consumer.Consume(ctx, w.Handle)
	if errors.Is(err, context.Canceled) {
		slog.Info("Notification worker stopped.")
		return nil
	}
	return err
}

// Handle mails a single queued notification.
func (w *Worker) Handle(_ context.Context, msg queue.Message) error {
	var n auth.Notification
	if err := json.Unmarshal(msg.Body, &n); err != nil {
		return fmt.Errorf("decode %s message %s: %w", msg.Type, msg.ID, err)
	}

	if err := w.deliverer.Deliver(msg.Type, n); err != nil {
		w.recorder.RecordEvent(metrics.EventMailFailed)
		return fmt.Errorf("deliver message %s: %w", msg.ID, err)
	}

	w.recorder.RecordEvent(metrics.EventMailDelivered)
	slog.Info("Notification delivered.", "id", msg.ID, "kind", msg.Type, "notification", n)
	return nil
}
