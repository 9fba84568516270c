package user

import (
	"log/slog"

	"github.com/ferdiebergado/accountkit/internal/model"
)

// User is an account. Token is non-nil exactly while a confirmation or a
// password reset is pending.
type User struct {
	model.Model

	Name         string
	Email        string
	PasswordHash string
	Confirmed    bool
	Token        *string
}

// HasPendingToken reports whether a confirmation or reset is outstanding.
func (u User) HasPendingToken() bool {
	return u.Token != nil
}

func (u User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", u.ID),
		slog.String("email", u.Email),
		slog.Bool("confirmed", u.Confirmed),
		slog.Bool("pending_token", u.HasPendingToken()),
	)
}
