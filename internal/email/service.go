package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/tuaha311/aesthetics-clinic/internal/config"
)

var ErrNotConfigured = errors.New("email delivery is not configured")

type Service interface {
	SendCustom(ctx context.Context, to []string, subject string, content string) error
}

// dialer is the part of gomail.Dialer the SMTP service uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpService struct {
	from   string
	dialer dialer
}

// NewSMTPService sends plain-text mail through the configured SMTP relay.
func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) SendCustom(ctx context.Context, to []string, subject, content string) error {
	if len(to) == 0 {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NopService discards mail when no SMTP relay is configured.
type NopService struct{}

func (NopService) SendCustom(context.Context, []string, string, string) error { return ErrNotConfigured }
