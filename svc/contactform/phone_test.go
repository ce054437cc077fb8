package contactform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contactform/svc/contactform"
)

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", ""},
		{"5", "5"},
		{"55", "55"},
		{"555", "(555) "},
		{"5551", "(555) 1"},
		{"55512", "(555) 12"},
		{"555123", "(555) 123-"},
		{"5551234", "(555) 123-4"},
		{"5551234567", "(555) 123-4567"},
		{"555123456789", "(555) 123-4567"},
		{"(555) 123-4567", "(555) 123-4567"},
		{"555.123.4567", "(555) 123-4567"},
		{"+1 555 123 4567", "(155) 512-3456"},
		{"5a5b5", "(555) "},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, contactform.FormatPhone(tt.in))
		})
	}
}

func TestFormatPhone_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "x", "1", "12", "123", "1234", "123456", "1234567890", "12345678901234", "(12) 3-4", "٣٣٣"}
	for _, in := range inputs {
		once := contactform.FormatPhone(in)
		assert.Equal(t, once, contactform.FormatPhone(once), "input %q", in)
	}
}
