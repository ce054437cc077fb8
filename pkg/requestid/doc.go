// Package requestid tags every HTTP request with a correlation ID.
//
// Middleware accepts a client-supplied X-Request-ID when it is at most 128
// characters of [A-Za-z0-9_-] and otherwise generates a UUID. The ID is echoed
// in the response header and stored in the request context, where
// FromContext and LoggerExtractor pick it up:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	srv := requestid.Middleware(router)
package requestid
