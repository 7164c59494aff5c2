// internal/pkg/email/smtp.go
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// sendSMTPEmail sends email using SMTP (Gmail, Outlook, or self-hosted)
func (s *Service) sendSMTPEmail(ctx context.Context, email *Email) error {
	cfg := s.config.External.Email
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host or username")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(email.To, ", "),
		"Subject":      email.Subject,
		"MIME-Version": "1.0",
		"Content-Type": `text/html; charset="utf-8"`,
	}

	var msg bytes.Buffer
	for key, value := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLContent)

	serverAddr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)

	if cfg.UseTLS {
		return s.sendSMTPWithTLS(serverAddr, auth, cfg.FromEmail, email.To, msg.Bytes())
	}
	return smtp.SendMail(serverAddr, auth, cfg.FromEmail, email.To, msg.Bytes())
}

// sendSMTPWithTLS sends over an implicit-TLS connection (port 465 style)
func (s *Service) sendSMTPWithTLS(serverAddr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	cfg := s.config.External.Email

	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{
		ServerName: cfg.SMTPHost,
	})
	if err != nil {
		return fmt.Errorf("failed to establish TLS connection: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, cfg.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize message body: %w", err)
	}

	return client.Quit()
}
