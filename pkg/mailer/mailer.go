package mailer

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/sshusain313/causeconnect-sub000/internal/config"
)

// Mailer is the notification sink for outbound email
type Mailer interface {
	SendMail(to, subject, body string) (string, error)
}

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// MockMailer is a mail sink for development and testing; it never sends
// anything and always succeeds.
type MockMailer struct{}

// NewMailer selects the mailer implementation based on configuration
func NewMailer(cfg *config.Config) Mailer {
	if cfg.Mail.MockMailer {
		return &MockMailer{}
	}
	return &SMTPMailer{
		host: cfg.Mail.SMTPHost,
		port: cfg.Mail.SMTPPort,
		user: cfg.Mail.Username,
		pass: cfg.Mail.Password,
		from: cfg.Mail.FromAddress,
	}
}

// SendMail sends an email via SMTP
func (m *SMTPMailer) SendMail(to, subject, body string) (string, error) {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SMTP-MSG-%d", time.Now().UnixNano()), nil
}

// SendMail records nothing and returns a synthetic message ID
func (m *MockMailer) SendMail(to, subject, body string) (string, error) {
	return fmt.Sprintf("MOCK-MSG-%d", time.Now().UnixNano()), nil
}
