package auth

import (
	"context"
	"errors"

	"github.com/ferdiebergado/accountkit/internal/user"
)

type StubService struct {
	RegisterFunc             func(ctx context.Context, params RegisterParams) (user.User, error)
	ConfirmFunc              func(ctx context.Context, token string) error
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	VerifyResetTokenFunc     func(ctx context.Context, token string) (user.User, error)
	ResetPasswordFunc        func(ctx context.Context, params ResetPasswordParams) error
	LoginFunc                func(ctx context.Context, params LoginParams) (string, error)
}

var _ AccountService = (*StubService)(nil)

func (s *StubService) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	if s.RegisterFunc == nil {
		return user.User{}, errors.New("Register not implemented by stub")
	}
	return s.RegisterFunc(ctx, params)
}

func (s *StubService) Confirm(ctx context.Context, token string) error {
	if s.ConfirmFunc == nil {
		return errors.New("Confirm not implemented by stub")
	}
	return s.ConfirmFunc(ctx, token)
}

func (s *StubService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.RequestPasswordResetFunc == nil {
		return errors.New("RequestPasswordReset not implemented by stub")
	}
	return s.RequestPasswordResetFunc(ctx, email)
}

func (s *StubService) VerifyResetToken(ctx context.Context, token string) (user.User, error) {
	if s.VerifyResetTokenFunc == nil {
		return user.User{}, errors.New("VerifyResetToken not implemented by stub")
	}
	return s.VerifyResetTokenFunc(ctx, token)
}

func (s *StubService) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	if s.ResetPasswordFunc == nil {
		return errors.New("ResetPassword not implemented by stub")
	}
	return s.ResetPasswordFunc(ctx, params)
}

func (s *StubService) Login(ctx context.Context, params LoginParams) (string, error) {
	if s.LoginFunc == nil {
		return "", errors.New("Login not implemented by stub")
	}
	return s.LoginFunc(ctx, params)
}

type StubNotifier struct {
	SendConfirmationFunc  func(ctx context.Context, n Notification) error
	SendPasswordResetFunc func(ctx context.Context, n Notification) error
}

var _ Notifier = (*StubNotifier)(nil)

func (s *StubNotifier) SendConfirmation(ctx context.Context, n Notification) error {
	if s.SendConfirmationFunc == nil {
		return errors.New("SendConfirmation not implemented by stub")
	}
	return s.SendConfirmationFunc(ctx, n)
}

func (s *StubNotifier) SendPasswordReset(ctx context.Context, n Notification) error {
	if s.SendPasswordResetFunc == nil {
		return errors.New("SendPasswordReset not implemented by stub")
	}
	return s.SendPasswordResetFunc(ctx, n)
}
