package auth

import (
	"context"
	"log/slog"
)

// Notification is what the user needs to act on a pending token.
type Notification struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (n Notification) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", n.Email),
		slog.String("token", "*"),
	)
}

// Notifier delivers account notifications. The service never fails an
// operation because of a delivery error.
type Notifier interface {
	SendConfirmation(ctx context.Context, n Notification) error
	SendPasswordReset(ctx context.Context, n Notification) error
}
