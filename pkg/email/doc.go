// Package email sends transactional messages through a provider-agnostic
// EmailSender interface.
//
// Three senders are available:
//   - NewPostmarkClient delivers through Postmark's API with open and link tracking
//   - NewSMTPSender relays through any SMTP server
//   - NewDevSender writes HTML and JSON files to a local directory
//
// Every sender validates SendEmailParams before doing any work and wraps
// delivery failures in ErrFailedToSendEmail:
//
//	sender, err := email.NewSMTPSender(cfg)
//	if err != nil {
//	    return err
//	}
//
//	body, err := templates.Render(ctx, component)
//	if err != nil {
//	    return err
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "inbox@example.com",
//	    ReplyTo:  "visitor@example.org",
//	    Subject:  "New message",
//	    BodyHTML: body,
//	    Tag:      "contact-form",
//	})
//	if errors.Is(err, email.ErrInvalidParams) {
//	    // caller bug
//	}
//
// Config is loaded from the environment (POSTMARK_*, SMTP_*, SENDER_EMAIL,
// SUPPORT_EMAIL). SupportEmail is the default Reply-To; a per-message
// ReplyTo overrides it.
package email
