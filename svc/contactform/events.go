package contactform

// Kind identifies an event in the controller's dispatch table.
type Kind string

const (
	KindInput         Kind = "input"
	KindBlur          Kind = "blur"
	KindSubmit        Kind = "submit"
	KindDismissBanner Kind = "dismiss_banner"
	KindFill          Kind = "fill"

	kindSubmissionDone Kind = "submission_done"
	kindBannerExpired  Kind = "banner_expired"
	kindResetDue       Kind = "reset_due"
)

// Event is something the user or a timer did to the form.
type Event interface {
	Kind() Kind
}

// Input reports that the user changed the value of a field.
type Input struct {
	Field Field
	Value string
}

// Blur reports that a field lost focus.
type Blur struct {
	Field Field
}

// Submit requests submission of the form.
type Submit struct{}

// DismissBanner closes the error banner before its timer does.
type DismissBanner struct{}

// Fill writes a named preset into the form without validating it.
type Fill struct {
	Preset string
}

func (Input) Kind() Kind { return KindInput }
func (Blur) Kind() Kind { return KindBlur }
func (Submit) Kind() Kind { return KindSubmit }
func (DismissBanner) Kind() Kind { return KindDismissBanner }
func (Fill) Kind() Kind { return KindFill }

// Internal completions carry the generation they were issued for.
// A completion whose generation is no longer current is ignored.
type submissionDone struct {
	gen uint64
	err error
}

type bannerExpired struct{ gen uint64 }

type resetDue struct{ gen uint64 }

func (submissionDone) Kind() Kind { return kindSubmissionDone }
func (bannerExpired) Kind() Kind { return kindBannerExpired }
func (resetDue) Kind() Kind { return kindResetDue }
