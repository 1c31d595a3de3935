package email

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when no SMTP host has been set.
var ErrNotConfigured = errors.New("smtp is not configured")

// Mailer sends plain text messages.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(host, port, from, password string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		From:     from,
		Password: password,
		send:     smtp.SendMail,
	}
}

// SendEmail sends a plain text email using SMTP.
func (m *SMTPMailer) SendEmail(to, subject, body string) error {
	if m.Host == "" || m.From == "" {
		return ErrNotConfigured
	}

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	address := m.Host + ":" + m.Port

	if err := m.send(address, auth, m.From, []string{to}, buildMessage(m.From, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	// Header injection guard.
	subject = strings.NewReplacer("\r", " ", "\n", " ").Replace(subject)

	return []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" + body + "\r\n")
}
