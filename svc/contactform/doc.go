// Package contactform implements a contact form: per-field validation rules,
// live phone formatting, a message character counter and a submission
// lifecycle with timed banner dismissal and form reset.
//
// A Controller owns one form. User interfaces translate their input into
// events and render whatever the controller pushes to their Surface:
//
//	c := contactform.New(surface,
//	    contactform.WithConfig(cfg),
//	    contactform.WithSubmitter(submitter),
//	    contactform.WithLogger(log),
//	)
//	defer c.Close()
//
//	_ = c.Dispatch(ctx, contactform.Input{Field: contactform.FieldPhone, Value: "5551234567"})
//	_ = c.Dispatch(ctx, contactform.Blur{Field: contactform.FieldPhone})
//	if err := c.Dispatch(ctx, contactform.Submit{}); errors.Is(err, contactform.ErrSubmissionInProgress) {
//	    // ignore double clicks
//	}
//
// Submission status moves Idle -> Submitting -> Success | Failed. Success
// returns to Idle with a cleared form after Config.ResetAfter. Failed returns
// to Idle when its banner is dismissed, times out, or the user submits again.
//
// Validate, CheckAll, FormatPhone and Count are pure and can be used without
// a controller.
package contactform
