package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/go-shop-api/internal/config"
)

// Mailer is the out-of-band delivery contract consumed by the verification
// flows: send this code to this address. A delivery failure never rolls
// back the state that triggered it.
type Mailer interface {
	Send(to, toName, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	fromName string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		fromName: cfg.SMTPFromName,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) Send(to, toName, subject, body string) error {
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s <%s>\r\nSubject: %s\r\n\r\n%s",
		m.fromName, m.from, toName, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
