package email

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/smtp"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/ferdiebergado/accountkit/internal/config"
)

type templateMap map[string]*template.Template

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	user      string
	pass      string
	host      string
	port      int
	sender    string
	templates templateMap
	sendMail  sendFunc
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer parses every page under opts.Templates against the shared layout.
func NewSMTPMailer(cfg *config.SMTP, opts *config.Email) (*SMTPMailer, error) {
	return NewSMTPMailerFS(cfg, opts.Sender, os.DirFS(opts.Templates), opts.Layout)
}

func NewSMTPMailerFS(cfg *config.SMTP, sender string, fsys fs.FS, layout string) (*SMTPMailer, error) {
	tmplMap, err := parsePages(fsys, layout)
	if err != nil {
		return nil, fmt.Errorf("parse pages with layout %q: %w", layout, err)
	}

	return &SMTPMailer{
		user:      cfg.User,
		pass:      cfg.Password,
		host:      cfg.Host,
		port:      cfg.Port,
		sender:    sender,
		templates: tmplMap,
		sendMail:  smtp.SendMail,
	}, nil
}

// Render executes the page tmplName inside the layout.
func (e *SMTPMailer) Render(tmplName string, data map[string]string) (string, error) {
	tmpl, ok := e.templates[tmplName]
	if !ok {
		return "", fmt.Errorf("template does not exist: %s", tmplName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute email template %q: %w", tmplName, err)
	}

	return buf.String(), nil
}

func (e *SMTPMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	body, err := e.Render(tmplName, data)
	if err != nil {
		return err
	}

	if err := e.send(to, subject, body, "text/html"); err != nil {
		return fmt.Errorf("send email with subject %q: %w", subject, err)
	}

	return nil
}

func (e *SMTPMailer) send(to []string, subject, body, contentType string) error {
	var auth smtp.Auth
	if e.user != "" {
		auth = smtp.PlainAuth("", e.user, e.pass, e.host)
	}

	headers := "From: " + e.sender + "\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0\r\n" +
		"Content-Type: " + contentType + "; charset=\"UTF-8\"\r\n\r\n"

	addr := net.JoinHostPort(e.host, strconv.Itoa(e.port))
	if err := e.sendMail(addr, auth, e.sender, to, []byte(headers+body)); err != nil {
		return fmt.Errorf("smtp send from %q to %q: %w", e.sender, to, err)
	}

	slog.Info("Email sent.", "subject", subject)
	return nil
}

func parsePages(fsys fs.FS, layout string) (templateMap, error) {
	layoutTmpl, err := template.New(path.Base(layout)).ParseFS(fsys, layout)
	if err != nil {
		return nil, fmt.Errorf("parse layout %q: %w", layout, err)
	}

	tmplMap := make(templateMap)
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk templates at %q: %w", p, err)
		}

		const suffix = ".html"
		if d.IsDir() || !strings.HasSuffix(p, suffix) || p == layout {
			return nil
		}

		clone, err := layoutTmpl.Clone()
		if err != nil {
			return fmt.Errorf("clone layout: %w", err)
		}

		page, err := clone.ParseFS(fsys, p)
		if err != nil {
			return fmt.Errorf("parse page %q: %w", p, err)
		}

		name := strings.TrimSuffix(p, suffix)
		tmplMap[name] = page
		slog.Debug("parsed page", "path", p, "name", name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load page templates: %w", err)
	}

	return tmplMap, nil
}
