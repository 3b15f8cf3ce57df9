package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"unstablenet/internal/config"
)

// Sender delivers a single email message.
type Sender interface {
	Send(recipient, subject, body string) error
}

// SMTPMailer sends mail over an authenticated STARTTLS connection.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer from the SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send connects to the configured SMTP server, upgrades to TLS, and delivers
// the message to a single recipient.
func (m *SMTPMailer) Send(recipient, subject, body string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: m.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(m.cfg.Sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create mail writer: %w", err)
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", m.cfg.Sender, recipient, subject)
	if m.cfg.ReplyTo != "" {
		headers += fmt.Sprintf("Reply-To: %s\r\n", m.cfg.ReplyTo)
	}
	if _, err = writer.Write([]byte(headers + "\r\n" + body)); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close mail writer: %w", err)
	}

	return client.Quit()
}
