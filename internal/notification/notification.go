// Package notification delivers account notifications by mail, either directly
// or through a message queue drained by a worker.
package notification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ferdiebergado/accountkit/internal/auth"
)

const (
	KindConfirmation  = "confirmation"
	KindPasswordReset = "password_reset"
)

var ErrUnknownKind = errors.New("notification: unknown kind")

type mail struct {
	subject  string
	title    string
	template string
	path     string
}

var mails = map[string]mail{
	KindConfirmation: {
		subject:  "Confirm your email",
		title:    "Email confirmation",
		template: "confirmation",
		path:     "/auth/confirm/",
	},
	KindPasswordReset: {
		subject:  "Reset your password",
		title:    "Password reset",
		template: "reset_password",
		path:     "/auth/reset/",
	},
}

func mailFor(kind string) (mail, error) {
	m, ok := mails[kind]
	if !ok {
		return mail{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return m, nil
}

func (m mail) data(baseURL string, n auth.Notification) map[string]string {
	return map[string]string{
		"Title":  m.title,
		"Header": m.subject,
		"Name":   n.Name,
		"Link":   strings.TrimSuffix(baseURL, "/") + m.path + n.Token,
	}
}
