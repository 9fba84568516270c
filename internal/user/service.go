package user

import (
	"context"
	"fmt"
)

type Finder interface {
	Find(ctx context.Context, userID string) (User, error)
}

type Service interface {
	Profile(ctx context.Context, userID string) (User, error)
}

type service struct {
	repo Finder
}

var _ Service = (*service)(nil)

func NewService(repo Finder) Service {
	return &service{repo: repo}
}

func (s *service) Profile(ctx context.Context, userID string) (User, error) {
	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("user service: profile of %s: %w", userID, err)
	}
	return u, nil
}
