// Package binder fills request structs from HTTP requests.
//
// Binders share the signature func(r *http.Request, v any) error so they can
// be chained by handler.WithBinders. A binder that finds nothing to read
// returns ErrBinderNotApplicable and the chain moves on.
//
//   - JSON decodes a JSON body strictly and strips control characters from strings
//   - Path reads router path parameters through an extractor such as chi.URLParam
package binder
