package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// Rule codes.
const (
	CodeRequired   = "required"
	CodeMinLength  = "min_length"
	CodeMaxLength  = "max_length"
	CodePattern    = "pattern"
	CodeDigitCount = "digit_count"
	CodeEmail      = "email"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Required fails for empty or whitespace-only values.
func Required(field, value string) Rule {
	return Rule{
		Field:   field,
		Code:    CodeRequired,
		Message: "field is required",
		Check:   func() bool { return !blank(value) },
	}
}

// Length is the length of s as a browser reports it: UTF-16 code units.
// "José" has length 4; "🚀" has length 2.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}

// MinLen measures value with Length.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Field:   field,
		Code:    CodeMinLength,
		Message: fmt.Sprintf("must be at least %d characters long", min),
		Check:   func() bool { return Length(value) >= min },
	}
}

// MaxLen measures value with Length.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Field:   field,
		Code:    CodeMaxLength,
		Message: fmt.Sprintf("must be at most %d characters long", max),
		Check:   func() bool { return Length(value) <= max },
	}
}

// MatchesPattern fails for blank values and values re does not match.
// description names the expected shape in the default message.
func MatchesPattern(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Field:   field,
		Code:    CodePattern,
		Message: fmt.Sprintf("must match %s pattern", description),
		Check:   func() bool { return !blank(value) && re.MatchString(value) },
	}
}

// DigitCount requires exactly n ASCII digits and ignores every other
// character, so "(555) 123-4567" has 10.
func DigitCount(field, value string, n int) Rule {
	return Rule{
		Field:   field,
		Code:    CodeDigitCount,
		Message: fmt.Sprintf("must contain exactly %d digits", n),
		Check:   func() bool { return CountDigits(value) == n },
	}
}

func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if '0' <= r && r <= '9' {
			n++
		}
	}
	return n
}
