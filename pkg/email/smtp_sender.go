package email

import (
	"context"

	"gopkg.in/gomail.v2"
)

type smtpSender struct {
	dialer *gomail.Dialer
	cfg    Config
}

// NewSMTPSender relays through an SMTP server. Credentials may be empty
// for relays that accept unauthenticated mail.
func NewSMTPSender(cfg Config) (EmailSender, error) {
	switch {
	case cfg.SMTPHost == "":
		return nil, configError("SMTPHost is required")
	case cfg.SMTPPort <= 0:
		return nil, configError("SMTPPort must be positive")
	}
	if err := cfg.validateIdentity(); err != nil {
		return nil, err
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		cfg:    cfg,
	}, nil
}

// SendEmail dials once per message. gomail cannot be cancelled, so ctx is
// only checked before dialing.
func (s *smtpSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	env, err := newEnvelope(s.cfg, params)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return sendError(err)
	}

	m := gomail.NewMessage()
	m.SetHeaders(map[string][]string{
		"From":     {env.From},
		"Reply-To": {env.ReplyTo},
		"To":       {env.SendTo},
		"Subject":  {env.Subject},
	})
	if env.Tag != "" {
		m.SetHeader("X-Tag", env.Tag)
	}
	m.SetBody("text/html", env.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return sendError(err)
	}
	return nil
}
