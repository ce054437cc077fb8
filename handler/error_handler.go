package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/requestid"
)

const genericErrorMessage = "An error occurred processing your request"

// ErrorPageParams is passed to the full-page error component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams is passed to the toast component patched into live pages.
type ErrorToastParams struct {
	Message   string
	Type      string // "warning" for 4xx, "error" otherwise
	RequestID string
}

// ErrorHandlerConfig selects the components NewErrorHandler renders.
// Missing components degrade to plain text (page) or nothing (toast).
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component

	ToastTarget string                    // default "#toasts"
	ToastMode   datastar.ElementPatchMode // default PatchPrepend
}

// failure is what a handler error means for the client.
type failure struct {
	status  int
	message string
}

// describe maps err to a status and a client-safe message. Errors the
// package does not recognise are reported as a generic 500.
func describe(err error) failure {
	var verr ValidationError
	if errors.As(err, &verr) {
		return failure{status: http.StatusBadRequest, message: verr.summary()}
	}
	if herr, ok := AsHTTPError(err); ok {
		return failure{status: herr.Code, message: herr.Key}
	}
	return failure{status: http.StatusInternalServerError, message: genericErrorMessage}
}

func (f failure) clientFault() bool {
	return f.status >= 400 && f.status < 500
}

func (f failure) level() slog.Level {
	if f.clientFault() {
		return slog.LevelWarn
	}
	return slog.LevelError
}

func (f failure) toastType() string {
	if f.clientFault() {
		return "warning"
	}
	return "error"
}

// NewErrorHandler logs err and answers with ErrorToast for DataStar
// requests or ErrorPage for everything else.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		f := describe(err)
		live := IsDataStar(r)

		log.LogAttrs(r.Context(), f.level(), "request failed",
			logger.Error(err),
			slog.Int("status_code", f.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", live),
		)

		var rendered error
		switch {
		case live && cfg.ErrorToast == nil:
			log.WarnContext(r.Context(), "no toast component, error not shown")
		case live:
			// Patches travel over SSE, so the response itself stays 200.
			toast := cfg.ErrorToast(ErrorToastParams{Message: f.message, Type: f.toastType(), RequestID: reqID})
			rendered = Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode)).Render(ctx.ResponseWriter(), r)
		case cfg.ErrorPage == nil:
			http.Error(ctx.ResponseWriter(), f.message, f.status)
		default:
			w := ctx.ResponseWriter()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(f.status)
			page := cfg.ErrorPage(ErrorPageParams{Error: f.message, StatusCode: f.status, RequestID: reqID, RetryURL: r.URL.Path})
			rendered = page.Render(r.Context(), w)
		}
		if rendered != nil {
			log.ErrorContext(r.Context(), "render error response", logger.Error(rendered))
		}
	}
}
