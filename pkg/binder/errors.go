package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")

	// ErrBinderNotApplicable is returned by a binder that has nothing to read
	// from the request. Handler wrappers skip to the next binder.
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")
)
