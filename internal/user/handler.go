package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/accountkit/internal/pkg/message"
	"github.com/ferdiebergado/accountkit/internal/pkg/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

// Me responds with the profile of the user authenticated by the bearer token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.Unauthorized, nil)
		return
	}

	u, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondUnauthorized(w, err, message.Unauthorized, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	res := &ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
	web.RespondOK(w, nil, res)
}
