package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/accountkit/internal/middleware"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"Real IP header", map[string]string{"X-Real-IP": "1.1.1.1"}, "9.9.9.9:80", "1.1.1.1"},
		{"Forwarded for", map[string]string{"X-Forwarded-For": "2.2.2.2, 3.3.3.3"}, "9.9.9.9:80", "2.2.2.2"},
		{"Remote address", nil, "9.9.9.9:80", "9.9.9.9"},
		{"Remote address without port", nil, "9.9.9.9", "9.9.9.9"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := middleware.ClientIP(req); got != tc.want {
				t.Errorf("ClientIP() = %q, want: %q", got, tc.want)
			}
		})
	}
}

func TestSafeResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("Records status and size", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("created"))
		})

		var writer *middleware.SafeResponseWriter
		capture := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writer, _ = w.(*middleware.SafeResponseWriter)
				next.ServeHTTP(w, r)
			})
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		middleware.InjectWriter(middleware.LogRequest(capture(handler))).ServeHTTP(rec, req)

		if writer == nil {
			t.Fatal("response writer was not injected")
		}

		if got, want := rec.Code, http.StatusCreated; got != want {
			t.Errorf("rec.Code = %d, want: %d", got, want)
		}

		if got, want := writer.Status(), http.StatusCreated; got != want {
			t.Errorf("writer.Status() = %d, want: %d", got, want)
		}

		if got, want := writer.BytesWritten(), len("created"); got != want {
			t.Errorf("writer.BytesWritten() = %d, want: %d", got, want)
		}
	})

	t.Run("Drops writes after cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		rec := httptest.NewRecorder()
		w := middleware.NewSafeResponseWriter(ctx, rec)
		cancel()

		n, err := w.Write([]byte("late"))
		if err == nil || n != 0 {
			t.Errorf("w.Write() = %d, %v, want: 0 and an error", n, err)
		}

		if rec.Body.Len() != 0 {
			t.Errorf("rec.Body = %q, want it empty", rec.Body.String())
		}
	})

	t.Run("Write without header defaults to 200", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := middleware.NewSafeResponseWriter(context.Background(), rec)
		if _, err := w.Write([]byte("ok")); err != nil {
			t.Fatal(err)
		}

		if got, want := w.Status(), http.StatusOK; got != want {
			t.Errorf("w.Status() = %d, want: %d", got, want)
		}
	})
}
