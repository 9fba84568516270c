package security

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrMissingAuthHeader = errors.New("missing Authorization header")
	ErrMalformedBearer   = errors.New("malformed bearer token")
)

func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAuthHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMalformedBearer
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMalformedBearer
	}

	return token, nil
}
