package email

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	api *postmark.Client
	cfg Config
}

// NewPostmarkClient sends through Postmark's transactional API. Both the
// server and the account token are required.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	switch {
	case cfg.PostmarkServerToken == "":
		return nil, configError("PostmarkServerToken is required")
	case cfg.PostmarkAccountToken == "":
		return nil, configError("PostmarkAccountToken is required")
	}
	if err := cfg.validateIdentity(); err != nil {
		return nil, err
	}
	return &postmarkSender{
		api: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		cfg: cfg,
	}, nil
}

// SendEmail tracks opens and HTML link clicks.
func (s *postmarkSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	env, err := newEnvelope(s.cfg, params)
	if err != nil {
		return err
	}

	resp, err := s.api.SendEmail(ctx, postmark.Email{
		From:       env.From,
		ReplyTo:    env.ReplyTo,
		To:         env.SendTo,
		Subject:    env.Subject,
		Tag:        env.Tag,
		HTMLBody:   env.HTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	switch {
	case err != nil:
		return sendError(err)
	case resp.ErrorCode > 0:
		return sendError(fmt.Errorf("postmark: code %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
