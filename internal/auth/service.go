package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ferdiebergado/accountkit/internal/pkg/security"
	"github.com/ferdiebergado/accountkit/internal/platform/db"
	"github.com/ferdiebergado/accountkit/internal/platform/hash"
	"github.com/ferdiebergado/accountkit/internal/platform/jwt"
	"github.com/ferdiebergado/accountkit/internal/platform/metrics"
	"github.com/ferdiebergado/accountkit/internal/platform/validation"
	"github.com/ferdiebergado/accountkit/internal/user"
)

const (
	maskChar           = "*"
	defaultTokenLength = 32
)

type RegisterParams struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"eqfield=Password"`
}

// Normalize trims the surrounding whitespace of name and email.
func (p RegisterParams) Normalize() RegisterParams {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	return p
}

func (p RegisterParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", p.Name),
		slog.String("email", p.Email),
		slog.String("password", maskChar),
		slog.String("password_confirm", maskChar),
	)
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordParams struct {
	Token           string `json:"-"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"eqfield=Password"`
}

func (p ResetPasswordParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("token", maskChar),
		slog.String("password", maskChar),
		slog.String("password_confirm", maskChar),
	)
}

type LoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p LoginParams) Normalize() LoginParams {
	p.Email = strings.TrimSpace(p.Email)
	return p
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", p.Email),
		slog.String("password", maskChar),
	)
}

type Dependencies struct {
	Store       UserStore
	TxManager   db.TxManager
	Hasher      hash.Hasher
	Validator   validation.Validator
	Randomizer  security.Randomizer
	Notifier    Notifier
	Signer      jwt.Signer
	Recorder    metrics.Recorder
	TokenLength uint32
	AccessTTL   time.Duration
}

// Service drives the account lifecycle: registration, confirmation,
// password reset and login.
type Service struct {
	store       UserStore
	txMgr       db.TxManager
	hasher      hash.Hasher
	validator   validation.Validator
	randomizer  security.Randomizer
	notifier    Notifier
	signer      jwt.Signer
	recorder    metrics.Recorder
	tokenLength uint32
	accessTTL   time.Duration
}

func NewService(deps *Dependencies) *Service {
	tokenLen := deps.TokenLength
	if tokenLen == 0 {
		tokenLen = defaultTokenLength
	}

	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	return &Service{
		store:       deps.Store,
		txMgr:       deps.TxManager,
		hasher:      deps.Hasher,
		validator:   deps.Validator,
		randomizer:  deps.Randomizer,
		notifier:    deps.Notifier,
		signer:      deps.Signer,
		recorder:    recorder,
		tokenLength: tokenLen,
		accessTTL:   deps.AccessTTL,
	}
}

// Register creates an unconfirmed account with a pending confirmation token and
// notifies its owner.
func (s *Service) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	params = params.Normalize()

	if err := newValidationError(s.validator.ValidateStruct(params)); err != nil {
		return user.User{}, err
	}

	_, err := s.store.FindByEmail(ctx, params.Email)
	if err == nil {
		return user.User{}, ErrUserExists
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, fmt.Errorf("find user with email %s: %w", params.Email, err)
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	token, err := s.newToken()
	if err != nil {
		return user.User{}, err
	}

	u, err := s.store.Create(ctx, user.NewUser{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Token:        &token,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, ErrUserExists
		}
		return user.User{}, fmt.Errorf("create user with email %s: %w", params.Email, err)
	}

	s.recorder.RecordEvent(metrics.EventRegistered)
	s.notify(ctx, s.notifier.SendConfirmation, Notification{Name: u.Name, Email: u.Email, Token: token})

	return u, nil
}

// Confirm marks the owner of token as confirmed and consumes the token.
func (s *Service) Confirm(ctx context.Context, token string) error {
	err := s.consumeToken(ctx, token, func(u *user.User) error {
		u.Confirmed = true
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.RecordEvent(metrics.EventConfirmed)
	return nil
}

// RequestPasswordReset assigns a fresh token to the account of email, replacing
// any pending one, and sends it to the owner.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	req := resetRequest{Email: strings.TrimSpace(email)}
	if err := newValidationError(s.validator.ValidateStruct(req)); err != nil {
		return err
	}

	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user with email %s: %w", req.Email, err)
	}

	token, err := s.newToken()
	if err != nil {
		return err
	}

	if err := s.store.SetToken(ctx, u.ID, token); err != nil {
		return fmt.Errorf("save reset token for user %s: %w", u.ID, err)
	}

	s.recorder.RecordEvent(metrics.EventResetRequested)
	s.notify(ctx, s.notifier.SendPasswordReset, Notification{Name: u.Name, Email: u.Email, Token: token})

	return nil
}

// VerifyResetToken returns the owner of a pending token without consuming it.
func (s *Service) VerifyResetToken(ctx context.Context, token string) (user.User, error) {
	if token == "" {
		return user.User{}, ErrInvalidToken
	}

	u, err := s.store.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidToken
		}
		return user.User{}, fmt.Errorf("find user by token: %w", err)
	}

	return u, nil
}

// ResetPassword replaces the password of the owner of params.Token and consumes the token.
func (s *Service) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	if err := newValidationError(s.validator.ValidateStruct(params)); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.consumeToken(ctx, params.Token, func(u *user.User) error {
		u.PasswordHash = passwordHash
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.RecordEvent(metrics.EventPasswordReset)
	return nil
}

// Login returns a signed access token for a confirmed account.
func (s *Service) Login(ctx context.Context, params LoginParams) (string, error) {
	params = params.Normalize()
	if err := newValidationError(s.validator.ValidateStruct(params)); err != nil {
		return "", err
	}

	u, err := s.store.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user with email %s: %w", params.Email, err)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password of user %s: %w", u.ID, err)
	}

	if !ok {
		return "", ErrInvalidCredentials
	}

	if !u.Confirmed {
		return "", ErrUserNotVerified
	}

	accessToken, err := s.signer.Sign(u.ID, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("sign access token for user %s: %w", u.ID, err)
	}

	s.recorder.RecordEvent(metrics.EventLoggedIn)
	return accessToken, nil
}

// consumeToken applies mutate to the owner of token, clears the token and saves,
// all within one transaction holding the row lock.
func (s *Service) consumeToken(ctx context.Context, token string, mutate func(u *user.User) error) error {
	if token == "" {
		return ErrInvalidToken
	}

	return s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.store.FindByToken(txCtx, token)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrInvalidToken
			}
			return fmt.Errorf("find user by token: %w", err)
		}

		if err := mutate(&u); err != nil {
			return err
		}
		u.Token = nil

		if err := s.store.Save(txCtx, u); err != nil {
			return fmt.Errorf("save user %s: %w", u.ID, err)
		}
		return nil
	})
}

func (s *Service) newToken() (string, error) {
	token, err := s.randomizer.Randomize(s.tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func (s *Service) notify(ctx context.Context, send func(context.Context, Notification) error, n Notification) {
	if err := send(ctx, n); err != nil {
		s.recorder.RecordEvent(metrics.EventNotificationFail)
		slog.Error("failed to send notification", "notification", n, "reason", err)
		return
	}
	s.recorder.RecordEvent(metrics.EventNotificationSent)
}
