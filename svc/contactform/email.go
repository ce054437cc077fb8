package contactform

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/pkg/email"
	"github.com/dmitrymomot/contactform/pkg/email/templates"
	"github.com/dmitrymomot/contactform/pkg/sanitizer"
)

const emailTag = "contact-form"

// EmailSubmitter delivers submissions to an inbox through an email sender.
// Replies go to the visitor's address.
type EmailSubmitter struct {
	sender email.EmailSender
	inbox  string
}

func NewEmailSubmitter(sender email.EmailSender, inbox string) (*EmailSubmitter, error) {
	if strings.TrimSpace(inbox) == "" {
		return nil, ErrMissingInbox
	}
	return &EmailSubmitter{sender: sender, inbox: inbox}, nil
}

func (s *EmailSubmitter) Submit(ctx context.Context, sub Submission) error {
	body, err := templates.Render(ctx, SubmissionEmail(sub))
	if err != nil {
		return fmt.Errorf("render submission email: %w", err)
	}
	return s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   s.inbox,
		ReplyTo:  sub.Email,
		Subject:  "Contact form: " + sanitizer.PreventHeaderInjection(sub.Subject),
		BodyHTML: body,
		Tag:      emailTag,
	})
}

// SubmissionEmail renders the message forwarded to the inbox.
func SubmissionEmail(sub Submission) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		phone := sub.Phone
		if phone == "" {
			phone = "not provided"
		}
		newsletter := "no"
		if sub.Newsletter {
			newsletter = "yes"
		}

		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html><body style="font-family:sans-serif">`)
		b.WriteString(`<h2>New message from the contact form</h2><table cellpadding="4">`)
		for _, row := range [][2]string{
			{"Name", sub.Name},
			{"Email", sub.Email},
			{"Phone", phone},
			{"Subject", sub.Subject},
			{"Newsletter", newsletter},
			{"Received", sub.SubmittedAt.UTC().Format("2006-01-02 15:04:05 MST")},
		} {
			b.WriteString("<tr><th align=\"left\">")
			b.WriteString(row[0])
			b.WriteString("</th><td>")
			b.WriteString(templ.EscapeString(row[1]))
			b.WriteString("</td></tr>")
		}
		b.WriteString(`</table><p style="white-space:pre-wrap">`)
		b.WriteString(templ.EscapeString(sub.Message))
		b.WriteString(`</p></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
