// Package environment parses APP_ENV and carries the result through request
// contexts.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
//	if !environment.IsProduction(r.Context()) {
//		// render developer tooling
//	}
package environment
