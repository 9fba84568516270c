package middleware

import (
	"errors"
	"net/http"

	"github.com/ferdiebergado/accountkit/internal/pkg/message"
	"github.com/ferdiebergado/accountkit/internal/pkg/web"
	"github.com/ferdiebergado/accountkit/internal/platform/validation"
)

var errInvalidInput = errors.New("invalid input")

// ValidateInput checks the decoded params of type T before they reach the handler.
// It must run after DecodePayload. Params with a Normalize method are validated
// and passed on in their normalized form.
func ValidateInput[T any](validator validation.Validator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, err := web.ParamsFromContext[T](r.Context())
			if err != nil {
				web.RespondBadRequest(w, err, message.InvalidInput, nil)
				return
			}

			if n, ok := any(params).(interface{ Normalize() T }); ok {
				params = n.Normalize()
				r = r.WithContext(web.NewContextWithParams(r.Context(), params))
			}

			if errs := validator.ValidateStruct(params); len(errs) > 0 {
				web.RespondUnprocessableEntity(w, errInvalidInput, message.InvalidInput, errs)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
