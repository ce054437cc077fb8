package contactform

// Surface renders controller state. The controller calls it while holding its
// lock, so implementations must return quickly and must not dispatch events
// back into the controller from inside these methods.
type Surface interface {
	SetFieldValue(field Field, value string)
	SetFieldError(field Field, message string)
	SetFieldStyle(field Field, style Style)
	SetCharCount(count CharCount)
	SetSubmitting(submitting bool)
	SetFormVisible(visible bool)
	SetSuccessVisible(visible bool)
	ShowBanner(message string)
	HideBanner()
}

// NopSurface discards every update. Embed it to implement part of Surface.
type NopSurface struct{}

func (NopSurface) SetFieldValue(Field, string) {}
func (NopSurface) SetFieldError(Field, string) {}
func (NopSurface) SetFieldStyle(Field, Style) {}
func (NopSurface) SetCharCount(CharCount) {}
func (NopSurface) SetSubmitting(bool) {}
func (NopSurface) SetFormVisible(bool) {}
func (NopSurface) SetSuccessVisible(bool) {}
func (NopSurface) ShowBanner(string) {}
func (NopSurface) HideBanner() {}

// Snapshot is a copy of everything a surface displays.
type Snapshot struct {
	Values         map[Field]string
	Errors         map[Field]string
	Styles         map[Field]Style
	Count          CharCount
	Status         Status
	Banner         string
	FormVisible    bool
	SuccessVisible bool
}

// Value returns the current value of field.
func (s Snapshot) Value(field Field) string { return s.Values[field] }

// Submitting reports whether a submission is outstanding.
func (s Snapshot) Submitting() bool { return s.Status == StatusSubmitting }

// Subscribed reports whether the newsletter box is ticked.
func (s Snapshot) Subscribed() bool { return Checked(s.Values[FieldNewsletter]) }

// Checked reports whether a checkbox value means ticked.
func Checked(v string) bool {
	switch v {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
