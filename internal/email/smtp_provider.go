package email

import (
	"fmt"

	"kazicare_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail through gomail. One dial per message; this
// service's volume does not justify a held connection.
type SMTPProvider struct {
	cfg *config.Config
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.Email.FromEmail, p.cfg.Email.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendAccountVerified(to, name string) error {
	return p.Send(accountVerifiedEmail(to, name))
}

func (p *SMTPProvider) SendJobVerified(to, jobTitle string) error {
	return p.Send(jobVerifiedEmail(to, jobTitle))
}

func (p *SMTPProvider) SendNewApplication(to, jobTitle, applicantName string) error {
	return p.Send(newApplicationEmail(to, jobTitle, applicantName))
}

func (p *SMTPProvider) SendApplicationDecided(to, jobTitle string, accepted bool) error {
	return p.Send(applicationDecidedEmail(to, jobTitle, accepted))
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	return p.Send(passwordResetEmail(to, token))
}

func (p *SMTPProvider) Close() error {
	return nil
}
