package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ferdiebergado/accountkit/internal/pkg/message"
	"github.com/ferdiebergado/accountkit/internal/pkg/web"
	"github.com/ferdiebergado/accountkit/internal/user"
)

type AccountService interface {
	Register(ctx context.Context, params RegisterParams) (user.User, error)
	Confirm(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) (user.User, error)
	ResetPassword(ctx context.Context, params ResetPasswordParams) error
	Login(ctx context.Context, params LoginParams) (string, error)
}

var _ AccountService = (*Service)(nil)

type Handler struct {
	svc AccountService
}

func NewHandler(svc AccountService) *Handler {
	return &Handler{svc: svc}
}

type RegisterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	params, err := web.ParamsFromContext[RegisterParams](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	u, err := h.svc.Register(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			web.RespondConflict(w, err, message.UserExists, nil)
			return
		}
		respondError(w, err)
		return
	}

	msg := message.RegisterSuccess
	res := &RegisterResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
	web.RespondCreated(w, &msg, res)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Confirm(r.Context(), r.PathValue("token")); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			web.RespondNotFound(w, err, message.ConfirmFailed, nil)
			return
		}
		respondError(w, err)
		return
	}

	msg := message.ConfirmSuccess
	web.RespondOK[struct{}](w, &msg, nil)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r ForgotPasswordRequest) Normalize() ForgotPasswordRequest {
	r.Email = strings.TrimSpace(r.Email)
	return r
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[ForgotPasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			web.RespondNotFound(w, err, message.NoAccountForEmail, nil)
			return
		}
		respondError(w, err)
		return
	}

	msg := message.ResetSent
	web.RespondOK[struct{}](w, &msg, nil)
}

type ResetTokenResponse struct {
	Email string `json:"email"`
}

func (h *Handler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.VerifyResetToken(r.Context(), r.PathValue("token"))
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			web.RespondNotFound(w, err, message.ResetTokenInvalid, nil)
			return
		}
		respondError(w, err)
		return
	}

	msg := message.ResetTokenValid
	web.RespondOK(w, &msg, &ResetTokenResponse{Email: u.Email})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	params, err := web.ParamsFromContext[ResetPasswordParams](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}
	params.Token = r.PathValue("token")

	if err := h.svc.ResetPassword(r.Context(), params); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			web.RespondNotFound(w, err, message.ResetTokenInvalid, nil)
			return
		}
		respondError(w, err)
		return
	}

	msg := message.ResetSuccess
	web.RespondOK[struct{}](w, &msg, nil)
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	params, err := web.ParamsFromContext[LoginParams](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	accessToken, err := h.svc.Login(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		case errors.Is(err, ErrUserNotVerified):
			web.RespondUnauthorized(w, err, message.NotVerified, nil)
		default:
			respondError(w, err)
		}
		return
	}

	msg := message.LoggedIn
	web.RespondOK(w, &msg, &LoginResponse{AccessToken: accessToken, TokenType: "Bearer"})
}

// respondError answers validation failures with 422 and everything else with a
// generic server error.
func respondError(w http.ResponseWriter, err error) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, valErr.Errors)
		return
	}
	web.RespondInternalServerError(w, err)
}
