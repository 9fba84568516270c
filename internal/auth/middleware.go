package auth

import (
	"net/http"

	"github.com/ferdiebergado/accountkit/internal/pkg/message"
	"github.com/ferdiebergado/accountkit/internal/pkg/security"
	"github.com/ferdiebergado/accountkit/internal/pkg/web"
	"github.com/ferdiebergado/accountkit/internal/platform/jwt"
	"github.com/ferdiebergado/accountkit/internal/user"
)

// RequireToken admits requests carrying a valid bearer access token and puts
// its subject in the request context.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ExtractBearerToken(r)
			if err != nil {
				web.RespondUnauthorized(w, err, message.Unauthorized, nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				web.RespondUnauthorized(w, err, message.Unauthorized, nil)
				return
			}

			ctx := user.NewContextWithUser(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
