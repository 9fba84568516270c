package user

import (
	"context"
	"errors"
)

type ctxKey int

const userCtxKey ctxKey = iota

var ErrNoUserInContext = errors.New("user: no authenticated user in context")

// NewContextWithUser stores the id of the authenticated user.
func NewContextWithUser(baseCtx context.Context, userID string) context.Context {
	return context.WithValue(baseCtx, userCtxKey, userID)
}

func FromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userCtxKey).(string)
	if !ok || userID == "" {
		return "", ErrNoUserInContext
	}
	return userID, nil
}
