package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	ansiEscape    = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// MaxLength truncates s to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// NormalizeWhitespace collapses whitespace runs to one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// SingleLine joins a multi-line string into one normalized line.
func SingleLine(s string) string {
	return NormalizeWhitespace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

// RemoveControlChars drops control characters other than \n, \r and \t.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// RemoveControlSequences strips ANSI escape sequences, then control characters.
func RemoveControlSequences(s string) string {
	return RemoveControlChars(ansiEscape.ReplaceAllString(s, ""))
}

// NormalizeUnicode converts s to NFC so composed and decomposed accents compare equal.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// KeepDigits keeps ASCII digits only.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// PreventHeaderInjection removes line breaks and NUL bytes so s is safe in a
// single mail or HTTP header.
func PreventHeaderInjection(s string) string {
	return strings.NewReplacer("\r", "", "\n", "", "\x00", "").Replace(s)
}
