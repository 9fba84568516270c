package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// LogRequest logs every request after it is served. Status and size are only
// known when InjectWriter runs earlier in the chain.
func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		attrs := []any{
			"user_agent", r.UserAgent(),
			"ip", ClientIP(r),
			"method", r.Method,
			"url", r.URL.Path,
			"proto", r.Proto,
			"duration", time.Since(start),
		}

		if writer, ok := w.(*SafeResponseWriter); ok {
			attrs = append(attrs,
				slog.Int("status_code", writer.Status()),
				slog.Int("bytes", writer.BytesWritten()),
			)
		}

		slog.Info("incoming request", attrs...)
	})
}

// ClientIP extracts the client's IP address from the request, preferring the
// headers set by a reverse proxy.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}

	return RemoteIP(r)
}
