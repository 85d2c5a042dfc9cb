package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Ang3lito/rabiesresq/config"
)

type Service interface {
	SendPasswordReset(ctx context.Context, to string, token string) error
	SendWelcome(ctx context.Context, to string, name string) error
	SendCaseReference(ctx context.Context, to string, referenceCode string) error
	SendCustom(ctx context.Context, to string, subject string, body string) error
}

type smtpService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewSMTPService(cfg config.SMTPConfig, baseURL string) Service {
	return &smtpService{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		baseURL: baseURL,
	}
}

func (s *smtpService) SendPasswordReset(ctx context.Context, to string, token string) error {
	body := fmt.Sprintf(
		"We received a request to reset your RabiesResQ password.\n\n"+
			"Open the link below to choose a new one:\n%s/reset-password?token=%s\n\n"+
			"The link expires in one hour. If you did not ask for this, ignore this message.",
		s.baseURL, token)
	return s.send(ctx, to, "Reset your RabiesResQ password", body)
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, name string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour RabiesResQ account is ready. Sign in at %s to complete "+
			"your profile and report an animal exposure if you need care.",
		name, s.baseURL)
	return s.send(ctx, to, "Welcome to RabiesResQ", body)
}

func (s *smtpService) SendCaseReference(ctx context.Context, to string, referenceCode string) error {
	body := fmt.Sprintf(
		"Your exposure report has been received.\n\n"+
			"Reference code: %s\n\n"+
			"Bring this code to the clinic. Staff will use it to pull up your "+
			"pre-screening details at the counter.",
		referenceCode)
	return s.send(ctx, to, "Your RabiesResQ case reference", body)
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, body string) error {
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// NoopService satisfies Service without touching the network. Used
// when SMTP is not configured, so environments without a mail relay
// still run.
type NoopService struct{}

func (NoopService) SendPasswordReset(context.Context, string, string) error { return nil }
func (NoopService) SendWelcome(context.Context, string, string) error       { return nil }
func (NoopService) SendCaseReference(context.Context, string, string) error { return nil }
func (NoopService) SendCustom(context.Context, string, string, string) error {
	return nil
}
