// Package sanitizer holds small string transforms for untrusted input.
//
// Every transform has the shape func(string) string so they chain with Apply
// and Compose:
//
//	clean := sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Trim)
//	subject := sanitizer.Apply(raw, sanitizer.SingleLine, sanitizer.PreventHeaderInjection)
package sanitizer
