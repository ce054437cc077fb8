// Package contact serves the contact form in a browser using Datastar.
//
// Loading the page creates a Session holding its own contactform.Controller.
// The browser keeps the form in signals: bound inputs post their values to
// the session and every change the controller makes comes back as a signal
// patch on the session's SSE stream. Server-owned signals start with an
// underscore, so Datastar never sends them back.
//
// # Routes
//
//	GET  /                       page with a new session
//	GET  /healthz                readiness
//	POST /api/check              stateless JSON validation (422 with details)
//	GET  /s/{id}/stream          SSE signal patches
//	GET  /s/{id}/state           JSON snapshot
//	POST /s/{id}/input/{field}   value changed
//	POST /s/{id}/blur/{field}    field left
//	POST /s/{id}/submit
//	POST /s/{id}/dismiss         close the banner
//	POST /s/{id}/fill/{preset}   sample data, not in production
//
// # Usage
//
//	reg := contact.NewRegistry(cfg,
//		contact.WithLogger(log),
//		contact.WithFormOptions(contactform.WithSubmitter(sub), contactform.WithLogger(log)),
//	)
//	go reg.Run(ctx, cfg.ReapInterval)
//
//	svc := contact.NewService(cfg, reg, contact.Views{}, log)
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware, environment.Middleware(env))
//	r.Mount("/", svc.Handle())
//
// Sessions expire after SessionTTL without requests while no stream is open.
package contact
