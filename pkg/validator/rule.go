package validator

// Rule is a single check on a single field value. Code identifies the kind
// of check; Message is what a user sees when it fails.
type Rule struct {
	Field   string
	Code    string
	Message string
	Check   func() bool
}

// WithMessage returns a copy of r that fails with msg.
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

func (r Rule) failure() ValidationError {
	return ValidationError{Field: r.Field, Code: r.Code, Message: r.Message}
}

// Apply runs every rule and reports all failures.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs.Add(r.failure())
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// First runs rules in order and reports only the first failure. Rules
// after it are not checked.
func First(rules ...Rule) error {
	for _, r := range rules {
		if !r.Check() {
			return ValidationErrors{r.failure()}
		}
	}
	return nil
}

// When keeps rules only if cond holds. It makes optional fields read
// declaratively:
//
//	validator.First(validator.When(phone != "", validator.DigitCount("phone", phone, 10))...)
func When(cond bool, rules ...Rule) []Rule {
	if !cond {
		return nil
	}
	return rules
}
