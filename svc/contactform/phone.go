package contactform

import "strings"

// FormatPhone rewrites raw into the North American display format.
// Non-digits are dropped, at most ten digits are kept, and the digits are
// grouped as "(DDD) ", "(DDD) DDD-" and "(DDD) DDD-DDDD" as they are typed.
// Input without digits formats to the empty string.
// FormatPhone is idempotent.
func FormatPhone(raw string) string {
	digits := make([]byte, 0, PhoneDigits)
	for i := 0; i < len(raw) && len(digits) < PhoneDigits; i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	d := string(digits)
	switch n := len(d); {
	case n < 3:
		return d
	case n < 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		var b strings.Builder
		b.Grow(len("(DDD) DDD-DDDD"))
		b.WriteString("(")
		b.WriteString(d[:3])
		b.WriteString(") ")
		b.WriteString(d[3:6])
		b.WriteString("-")
		b.WriteString(d[6:])
		return b.String()
	}
}
