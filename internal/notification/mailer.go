package notification

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/credsure/admin-api/internal/config"
)

// Mailer delivers transactional email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer builds a mailer from config.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return errors.New("smtp not configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String()))
}
