package contactform

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

const (
	NameMinLen    = 2
	SubjectMinLen = 3
	MessageMinLen = 10
	MessageMaxLen = 500
	PhoneDigits   = 10
)

// Messages shown next to a field when its value is rejected.
const (
	MsgNameRequired     = "Name is required"
	MsgNameTooShort     = "Name must be at least 2 characters long"
	MsgNameInvalid      = "Name can only contain letters, spaces, hyphens, and apostrophes"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgPhoneInvalid     = "Please enter a valid phone number"
	MsgSubjectRequired  = "Subject is required"
	MsgSubjectTooShort  = "Subject must be at least 3 characters long"
	MsgMessageRequired  = "Message is required"
	MsgMessageTooShort  = "Message must be at least 10 characters long"
	MsgMessageTooLong   = "Message cannot exceed 500 characters"
	MsgCorrectErrors    = "Please correct the errors above before submitting."
	MsgSubmissionFailed = "There was an error sending your message. Please try again."
)

// space is the whitespace class browsers use for \s and trim(). Go's \s
// covers only the ASCII part of it.
const space = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// namePattern accepts ASCII letters only. Accented names are rejected.
var namePattern = regexp.MustCompile(`^[A-Za-z` + space + `'-]+$`)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// Result is the outcome of validating one field value.
type Result struct {
	Valid   bool
	Message string
}

// Validate checks value against the rules of field and returns the first
// failing rule's message. Values are trimmed before checking and lengths are
// counted with validator.Length. Fields without rules are always valid.
func Validate(field Field, value string) Result {
	value = trimSpace(value)
	err := validator.First(rulesFor(field, value)...)
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return Result{Message: verrs.First(string(field))}
	}
	return Result{Valid: true}
}

// rulesFor returns the ordered rules of field; the first failure wins.
func rulesFor(field Field, v string) []validator.Rule {
	f := string(field)
	switch field {
	case FieldName:
		return []validator.Rule{
			validator.Required(f, v).WithMessage(MsgNameRequired),
			validator.MinLen(f, v, NameMinLen).WithMessage(MsgNameTooShort),
			validator.MatchesPattern(f, v, namePattern, "name").WithMessage(MsgNameInvalid),
		}
	case FieldEmail:
		return []validator.Rule{
			validator.Required(f, v).WithMessage(MsgEmailRequired),
			validator.ValidEmail(f, v).WithMessage(MsgEmailInvalid),
		}
	case FieldPhone:
		return validator.When(v != "",
			validator.DigitCount(f, v, PhoneDigits).WithMessage(MsgPhoneInvalid),
		)
	case FieldSubject:
		return []validator.Rule{
			validator.Required(f, v).WithMessage(MsgSubjectRequired),
			validator.MinLen(f, v, SubjectMinLen).WithMessage(MsgSubjectTooShort),
		}
	case FieldMessage:
		return []validator.Rule{
			validator.Required(f, v).WithMessage(MsgMessageRequired),
			validator.MinLen(f, v, MessageMinLen).WithMessage(MsgMessageTooShort),
			validator.MaxLen(f, v, MessageMaxLen).WithMessage(MsgMessageTooLong),
		}
	}
	return nil
}

// Report holds the per-field results of a whole-form check.
// Fields that were not checked (an empty optional phone) have no entry.
type Report struct {
	Results map[Field]Result
}

// Valid reports whether every checked field passed.
func (r Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Valid {
			return false
		}
	}
	return true
}

// Checked reports whether field took part in the check.
func (r Report) Checked(field Field) bool {
	_, ok := r.Results[field]
	return ok
}

// CheckAll validates the required fields and, when it is not blank, the phone.
// Every checked field is evaluated even after a failure so all messages can be shown.
func CheckAll(values map[Field]string) Report {
	report := Report{Results: make(map[Field]Result, len(Fields))}
	for _, f := range Fields {
		switch {
		case f.Required():
		case f == FieldPhone && trimSpace(values[f]) != "":
		default:
			continue
		}
		report.Results[f] = Validate(f, values[f])
	}
	return report
}
