package user

import (
	"context"
	"errors"
)

type StubService struct {
	ProfileFunc func(ctx context.Context, userID string) (User, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Profile(ctx context.Context, userID string) (User, error) {
	if s.ProfileFunc == nil {
		return User{}, errors.New("Profile() not implemented by stub")
	}
	return s.ProfileFunc(ctx, userID)
}

type StubFinder struct {
	FindFunc func(ctx context.Context, userID string) (User, error)
}

var _ Finder = (*StubFinder)(nil)

func (f *StubFinder) Find(ctx context.Context, userID string) (User, error) {
	if f.FindFunc == nil {
		return User{}, errors.New("Find() not implemented by stub")
	}
	return f.FindFunc(ctx, userID)
}
