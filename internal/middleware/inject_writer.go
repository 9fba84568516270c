package middleware

import "net/http"

// InjectWriter wraps the response writer so that later middleware can read the
// status and size of the response.
func InjectWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := NewSafeResponseWriter(r.Context(), w)
		next.ServeHTTP(writer, r)
	})
}
