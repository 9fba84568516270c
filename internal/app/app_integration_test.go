//go:build integration

package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferdiebergado/accountkit/internal/app"
	"github.com/ferdiebergado/accountkit/internal/auth"
	"github.com/ferdiebergado/accountkit/internal/platform/db"
	"github.com/ferdiebergado/accountkit/internal/platform/db/dbtest"
)

type inbox struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (i *inbox) record(n auth.Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.tokens[n.Email] = n.Token
}

func (i *inbox) token(email string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.tokens[email]
}

func (i *inbox) notifier() *auth.StubNotifier {
	return &auth.StubNotifier{
		SendConfirmationFunc: func(_ context.Context, n auth.Notification) error {
			i.record(n)
			return nil
		},
		SendPasswordResetFunc: func(_ context.Context, n auth.Notification) error {
			i.record(n)
			return nil
		},
	}
}

func call(t *testing.T, srv *httptest.Server, method, path, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	return res.StatusCode, payload
}

func TestIntegrationApp_AccountLifecycle(t *testing.T) {
	conn := dbtest.NewPostgres(t)
	mail := &inbox{tokens: make(map[string]string)}

	cfg := testConfig()
	provider := newTestProvider(cfg, mail.notifier())
	provider.DB = conn
	provider.TxMgr = db.NewSQLTxManager(conn)

	api := app.New(cfg, provider, app.Middlewares(cfg, provider.Metrics))
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	registration := map[string]string{
		"name":             "Ana",
		"email":            "ana@x.com",
		"password":         "secret1",
		"password_confirm": "secret1",
	}

	code, _ := call(t, srv, http.MethodPost, "/auth/register", "", registration)
	require.Equal(t, http.StatusCreated, code)

	code, _ = call(t, srv, http.MethodPost, "/auth/register", "", registration)
	require.Equal(t, http.StatusConflict, code)

	login := map[string]string{"email": "ana@x.com", "password": "secret1"}
	code, _ = call(t, srv, http.MethodPost, "/auth/login", "", login)
	require.Equal(t, http.StatusUnauthorized, code, "unconfirmed account must not log in")

	confirmToken := mail.token("ana@x.com")
	require.Len(t, confirmToken, 64)

	code, _ = call(t, srv, http.MethodGet, "/auth/confirm/"+confirmToken, "", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, srv, http.MethodGet, "/auth/confirm/"+confirmToken, "", nil)
	require.Equal(t, http.StatusNotFound, code, "confirmation token is single use")

	code, body := call(t, srv, http.MethodPost, "/auth/login", "", login)
	require.Equal(t, http.StatusOK, code)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	accessToken, _ := data["access_token"].(string)
	require.NotEmpty(t, accessToken)

	code, body = call(t, srv, http.MethodGet, "/users/me", accessToken, nil)
	require.Equal(t, http.StatusOK, code)
	profile, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ana@x.com", profile["email"])
	require.Equal(t, true, profile["confirmed"])

	code, _ = call(t, srv, http.MethodPost, "/auth/forgot", "", map[string]string{"email": "nobody@x.com"})
	require.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, srv, http.MethodPost, "/auth/forgot", "", map[string]string{"email": " ana@x.com "})
	require.Equal(t, http.StatusOK, code, "surrounding whitespace is trimmed")

	resetToken := mail.token("ana@x.com")
	require.NotEqual(t, confirmToken, resetToken)

	code, body = call(t, srv, http.MethodGet, "/auth/reset/"+resetToken, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ana@x.com", body["data"].(map[string]any)["email"])

	reset := map[string]string{"password": "newpass1", "password_confirm": "newpass1"}
	code, _ = call(t, srv, http.MethodPost, "/auth/reset/"+resetToken, "", reset)
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, srv, http.MethodPost, "/auth/reset/"+resetToken, "", reset)
	require.Equal(t, http.StatusNotFound, code, "reset token is single use")

	code, _ = call(t, srv, http.MethodPost, "/auth/login", "", login)
	require.Equal(t, http.StatusUnauthorized, code, "old password must stop working")

	code, _ = call(t, srv, http.MethodPost, "/auth/login", "", map[string]string{"email": " ana@x.com", "password": "newpass1"})
	require.Equal(t, http.StatusOK, code)
}

func TestIntegrationApp_ConcurrentConfirm(t *testing.T) {
	conn := dbtest.NewPostgres(t)
	mail := &inbox{tokens: make(map[string]string)}

	cfg := testConfig()
	provider := newTestProvider(cfg, mail.notifier())
	provider.DB = conn
	provider.TxMgr = db.NewSQLTxManager(conn)

	srv := httptest.NewServer(app.New(cfg, provider, nil).Handler())
	defer srv.Close()

	code, _ := call(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ben", "email": "ben@x.com", "password": "secret1", "password_confirm": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	token := mail.token("ben@x.com")

	const workers = 6
	codes := make(chan int, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, _ := call(t, srv, http.MethodGet, "/auth/confirm/"+token, "", nil)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	var ok, notFound int
	for code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusNotFound:
			notFound++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, workers-1, notFound)
}
