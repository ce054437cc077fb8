package validator

import "regexp"

// EmailPattern is the address grammar browsers use for <input type="email">:
// a permissive local part, then dot-separated domain labels of up to 63
// alphanumerics or hyphens that neither start nor end with a hyphen.
// A bare host ("user@localhost") is accepted; empty labels ("a..b") are not.
var EmailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
		`@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// ValidEmail accepts what EmailPattern matches.
func ValidEmail(field, value string) Rule {
	return Rule{
		Field:   field,
		Code:    CodeEmail,
		Message: "must be a valid email address",
		Check:   func() bool { return !blank(value) && EmailPattern.MatchString(value) },
	}
}
