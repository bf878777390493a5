package email

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string // defaults to Username
}

// ErrIncompleteConfig is returned when the SMTP host or sender is missing.
var ErrIncompleteConfig = errors.New("SMTP host and sender must be set")

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers HTML mail through an SMTP relay using PLAIN auth.
type SMTPSender struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewSMTPSender validates cfg and returns a sender backed by net/smtp.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Sender == "" {
		cfg.Sender = cfg.Username
	}
	if cfg.Host == "" || cfg.Sender == "" {
		return nil, ErrIncompleteConfig
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}, nil
}

// Send delivers one message. net/smtp has no context support, so ctx is only
// checked before the session starts.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// For SMTP servers that don't require authentication, auth can be nil
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	msg := BuildMessage(s.cfg.Sender, to, subject, htmlBody)
	if err := s.send(addr, auth, s.cfg.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// BuildMessage constructs an HTML email with CRLF line endings.
func BuildMessage(from, to, subject, htmlBody string) []byte {
	return []byte(strings.Join([]string{
		"To: " + to,
		"From: " + from,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n"))
}

// DisabledSender is used when no SMTP account is configured; every Send fails.
type DisabledSender struct{}

func (DisabledSender) Send(context.Context, string, string, string) error {
	return ErrIncompleteConfig
}
