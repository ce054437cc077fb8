package contactform

import "errors"

var (
	ErrSubmissionInProgress = errors.New("contactform: a submission is already in progress")
	ErrSubmissionCompleted  = errors.New("contactform: submission completed, waiting for form reset")
	ErrUnknownEvent         = errors.New("contactform: unknown event")
	ErrUnknownField         = errors.New("contactform: unknown field")
	ErrUnknownPreset        = errors.New("contactform: unknown preset")
	ErrClosed               = errors.New("contactform: controller is closed")
	ErrSimulatedNetwork     = errors.New("contactform: simulated network error")
	ErrThrottled            = errors.New("contactform: too many submissions, try again later")
	ErrMissingInbox         = errors.New("contactform: inbox address is required for email delivery")
)
