// Package validator checks form values with small composable rules.
//
// Each constructor returns a Rule naming the field, a machine-readable Code,
// a default Message and the Check itself. Apply reports every failing rule;
// First stops at the first one, which suits fields whose checks are ordered
// by priority:
//
//	err := validator.First(
//		validator.Required("name", name).WithMessage("Full name is required"),
//		validator.MinLen("name", name, 2),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		msg := errs.First("name")
//	}
//
// Lengths are counted in characters, so "José" is four long.
package validator
