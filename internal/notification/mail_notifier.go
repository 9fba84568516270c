package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ferdiebergado/accountkit/internal/auth"
	"github.com/ferdiebergado/accountkit/internal/platform/email"
)

// MailNotifier mails notifications through an email.Mailer. Sends run in the
// background so that request latency does not include the SMTP exchange.
type MailNotifier struct {
	mailer  email.Mailer
	baseURL string
	wg      sync.WaitGroup
}

var _ auth.Notifier = (*MailNotifier)(nil)

// NewMailNotifier builds links to the account endpoints under baseURL.
func NewMailNotifier(mailer email.Mailer, baseURL string) *MailNotifier {
	return &MailNotifier{
		mailer:  mailer,
		baseURL: baseURL,
	}
}

func (m *MailNotifier) SendConfirmation(ctx context.Context, n auth.Notification) error {
	return m.sendAsync(ctx, KindConfirmation, n)
}

func (m *MailNotifier) SendPasswordReset(ctx context.Context, n auth.Notification) error {
	return m.sendAsync(ctx, KindPasswordReset, n)
}

// Deliver renders and sends the mail for kind and waits for the result.
func (m *MailNotifier) Deliver(kind string, n auth.Notification) error {
	msg, err := mailFor(kind)
	if err != nil {
		return err
	}

	if err := m.mailer.SendHTML([]string{n.Email}, msg.subject, msg.template, msg.data(m.baseURL, n)); err != nil {
		return fmt.Errorf("send %s mail: %w", kind, err)
	}
	return nil
}

// Wait blocks until every background send has finished.
func (m *MailNotifier) Wait() {
	m.wg.Wait()
}

func (m *MailNotifier) sendAsync(ctx context.Context, kind string, n auth.Notification) error {
	if _, err := mailFor(kind); err != nil {
		return err
	}

	detached := context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.Deliver(kind, n); err != nil {
			slog.ErrorContext(detached, "failed to send email", "kind", kind, "notification", n, "reason", err)
			return
		}
		slog.InfoContext(detached, "Email sent.", "kind", kind, "notification", n)
	}()

	return nil
}
