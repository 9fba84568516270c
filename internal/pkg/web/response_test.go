package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/ferdiebergado/accountkit/internal/pkg/message"
	"github.com/ferdiebergado/accountkit/internal/pkg/web"
)

func TestOK(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `json:"email"`
	}

	rec := httptest.NewRecorder()
	msg := "done"
	web.OK(rec, http.StatusCreated, &msg, &payload{Email: "ana@example.com"})

	if got, want := rec.Code, http.StatusCreated; got != want {
		t.Errorf(message.FmtErrStatusCode, got, want)
	}

	if got := rec.Header().Get(web.HeaderContentType); !strings.HasPrefix(got, web.MimeJSON) {
		t.Errorf("rec.Header().Get(%q) = %q, want: %q", web.HeaderContentType, got, web.MimeJSON)
	}

	var res web.OKResponse[*payload]
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}

	if res.Message != msg {
		t.Errorf("res.Message = %q, want: %q", res.Message, msg)
	}

	if res.Data == nil || res.Data.Email != "ana@example.com" {
		t.Errorf("res.Data = %+v, want email ana@example.com", res.Data)
	}
}

func TestFail(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	errs := map[string]string{"password": "password must be at least 6 characters long"}
	web.RespondUnprocessableEntity(rec, errors.New("invalid"), message.InvalidInput, errs)

	if got, want := rec.Code, http.StatusUnprocessableEntity; got != want {
		t.Errorf(message.FmtErrStatusCode, got, want)
	}

	var res web.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}

	want := web.ErrorResponse{Message: message.InvalidInput, Errors: errs}
	if !reflect.DeepEqual(res, want) {
		t.Errorf("res = %+v, want: %+v", res, want)
	}
}

func TestRespondInternalServerError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Plain error", errors.New("boom"), http.StatusInternalServerError},
		{"Cancelled", fmt.Errorf("query: %w", context.Canceled), http.StatusServiceUnavailable},
		{"Deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			web.RespondInternalServerError(rec, tc.err)

			if got, want := rec.Code, tc.code; got != want {
				t.Errorf(message.FmtErrStatusCode, got, want)
			}

			if strings.Contains(rec.Body.String(), tc.err.Error()) {
				t.Errorf("rec.Body = %q, must not leak the error", rec.Body.String())
			}
		})
	}
}
