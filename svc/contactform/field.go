package contactform

import "fmt"

// Field names one input of the contact form.
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldSubject    Field = "subject"
	FieldMessage    Field = "message"
	FieldNewsletter Field = "newsletter"
)

// Fields lists every form field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage, FieldNewsletter}

// ParseField converts a raw identifier (a route parameter, a CLI flag) into a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Validated reports whether the field has validation rules and an error region.
// The newsletter checkbox has neither.
func (f Field) Validated() bool {
	switch f {
	case FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage:
		return true
	}
	return false
}

// Required reports whether the field must be filled in before submitting.
func (f Field) Required() bool {
	return f.Validated() && f != FieldPhone
}

func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Full Name"
	case FieldEmail:
		return "Email Address"
	case FieldPhone:
		return "Phone Number"
	case FieldSubject:
		return "Subject"
	case FieldMessage:
		return "Message"
	case FieldNewsletter:
		return "Subscribe to our newsletter"
	}
	return string(f)
}

// Style is the feedback state of an input, used as its CSS class.
type Style string

const (
	StyleNeutral Style = ""
	StyleSuccess Style = "success"
	StyleError   Style = "error"
)
