package auth

import (
	"context"

	"github.com/ferdiebergado/accountkit/internal/user"
)

// UserStore is the persistence the account lifecycle depends on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByToken(ctx context.Context, token string) (user.User, error)
	Create(ctx context.Context, params user.NewUser) (user.User, error)
	Save(ctx context.Context, u user.User) error
	SetToken(ctx context.Context, userID, token string) error
}
