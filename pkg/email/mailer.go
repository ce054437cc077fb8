package email

import (
	"context"
	"strings"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

// EmailSender delivers a single message.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one message. ReplyTo overrides the configured
// support address; Tag is passed to providers that can group by it.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate runs before any sender does work.
func (p SendEmailParams) Validate() error {
	switch {
	case blank(p.SendTo):
		return paramsError("SendTo is required")
	case !isAddress(p.SendTo):
		return paramsError("SendTo must be a valid email address")
	case p.ReplyTo != "" && !isAddress(p.ReplyTo):
		return paramsError("ReplyTo must be a valid email address")
	case blank(p.Subject):
		return paramsError("Subject is required")
	case blank(p.BodyHTML):
		return paramsError("BodyHTML is required")
	}
	return nil
}

// envelope is a validated message with its sender identity resolved.
type envelope struct {
	From    string
	ReplyTo string
	SendTo  string
	Subject string
	HTML    string
	Tag     string
}

func newEnvelope(cfg Config, p SendEmailParams) (envelope, error) {
	if err := p.Validate(); err != nil {
		return envelope{}, err
	}
	env := envelope{
		From:    cfg.SenderEmail,
		ReplyTo: cfg.SupportEmail,
		SendTo:  p.SendTo,
		Subject: p.Subject,
		HTML:    p.BodyHTML,
		Tag:     p.Tag,
	}
	if p.ReplyTo != "" {
		env.ReplyTo = p.ReplyTo
	}
	return env, nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func isAddress(s string) bool { return validator.EmailPattern.MatchString(s) }
