// Package httpserver runs an http.Server with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns when ctx is cancelled or SIGINT/SIGTERM arrives. Request
// contexts derive from a base context that is cancelled when shutdown starts,
// so Server-Sent Event handlers observe Done and return promptly.
//
// HealthCheckHandler serves liveness ("ALIVE") and readiness ("READY" or 503
// "NOT_READY") checks.
package httpserver
