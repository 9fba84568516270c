package email

// Mailer delivers HTML email rendered from a named template.
type Mailer interface {
	SendHTML(to []string, subject, tmplName string, data map[string]string) error
}
