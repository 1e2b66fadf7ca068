// Package mailer delivers the rendered dashboard over authenticated SMTP.
// A missing mail password degrades to a logged skip: mail is an optional
// sink, never a reason to fail the run.
package mailer

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/store"
)

// Mailer sends HTML mail through the configured submission endpoint.
type Mailer struct {
	cfg      *store.Config
	password string

	// sendMail is swappable in tests; defaults to smtp.SendMail, which
	// negotiates STARTTLS when the server advertises it.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg *store.Config, password string) *Mailer {
	return &Mailer{
		cfg:      cfg,
		password: password,
		sendMail: smtp.SendMail,
	}
}

// Send submits the document as an HTML message to the configured recipient.
// Returns nil without sending when no password is configured.
func (m *Mailer) Send(ctx context.Context, html string) error {
	if m.password == "" {
		logger.Warn(ctx, "Email password not set, skipping email delivery")
		return nil
	}
	if m.cfg.Email.Recipient == "" {
		logger.Warn(ctx, "Email recipient not configured, skipping email delivery")
		return nil
	}

	msg := m.buildMessage(html)
	addr := fmt.Sprintf("%s:%d", m.cfg.Email.SMTPHost, m.cfg.Email.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.Email.From, m.password, m.cfg.Email.SMTPHost)

	if err := m.sendMail(addr, auth, m.cfg.Email.From, []string{m.cfg.Email.Recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("send dashboard email to %s: %w", m.cfg.Email.Recipient, err)
	}

	logger.Info(ctx, "Email sent", "recipient", m.cfg.Email.Recipient)
	return nil
}

// buildMessage assembles a multipart/alternative message with a base64
// encoded HTML part. Base64 keeps lines under the RFC 5322 limit regardless
// of the document's content.
func (m *Mailer) buildMessage(html string) string {
	boundary := generateBoundary()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.cfg.Email.FromName, m.cfg.Email.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.cfg.Email.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.cfg.Email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("\r\n")
	b.WriteString(encodeBase64WithLineBreaks(html))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.String()
}

func generateBoundary() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "portfolio-dashboard-boundary"
	}
	return "=_" + base64.RawURLEncoding.EncodeToString(buf)
}

// encodeBase64WithLineBreaks wraps the encoding at 76 characters per RFC 2045.
func encodeBase64WithLineBreaks(s string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(s))

	var b strings.Builder
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	return b.String()
}
