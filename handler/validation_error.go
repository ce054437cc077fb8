package handler

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// ValidationError collects failure messages per field. The same field may
// be reported more than once; Error shows only the first message.
type ValidationError url.Values

func NewValidationError() ValidationError {
	return make(ValidationError)
}

func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message for field, or "".
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Fields returns the fields carrying at least one message, by name.
func (e ValidationError) Fields() []string {
	return slices.Sorted(func(yield func(string) bool) {
		for field := range maps.Keys(e) {
			if e.Has(field) && !yield(field) {
				return
			}
		}
	})
}

func (e ValidationError) Error() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return "Validation failed"
	}
	var b strings.Builder
	b.WriteString("validation error: ")
	for i, field := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(field + ": " + e.Get(field))
	}
	return b.String()
}

// summary lists every message as "field: message", separated by "; ".
func (e ValidationError) summary() string {
	var parts []string
	for _, field := range e.Fields() {
		for _, msg := range e[field] {
			parts = append(parts, field+": "+msg)
		}
	}
	if len(parts) == 0 {
		return "Validation failed"
	}
	return strings.Join(parts, "; ")
}
