package middleware

import (
	"net/http"

	"github.com/ferdiebergado/accountkit/internal/pkg/message"
	"github.com/ferdiebergado/accountkit/internal/pkg/web"
)

// ContextGuard stops requests whose context is already done before any work is started.
func ContextGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.Context().Err(); err != nil {
			web.RespondServiceUnavailable(w, err, message.Unavailable, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
