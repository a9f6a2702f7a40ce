package services

import (
	"bytes"
	"fmt"
	"html/template"

	"main/config"

	"gopkg.in/gomail.v2"
)

// Notifier dispatches account mail. It is constructed once at startup
// and injected; there is no package-level transport.
type Notifier interface {
	SendPasswordReset(to, link string) error
}

var resetMailTemplate = template.Must(template.New("reset").Parse(`
<h3>Reset your password</h3>
<p>A password reset was requested for your account. The link below is
valid for a limited time and can be used once.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not request this, you can ignore this mail.</p>
`))

// MailNotifier sends mail over SMTP.
type MailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailNotifier(cfg config.MailerConfig) *MailNotifier {
	return &MailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *MailNotifier) SendPasswordReset(to, link string) error {
	var body bytes.Buffer
	if err := resetMailTemplate.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return fmt.Errorf("failed to render reset mail: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset Password")
	m.SetBody("text/html", body.String())

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}
