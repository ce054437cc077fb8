package contact

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/binder"
	"github.com/dmitrymomot/contactform/pkg/broadcast"
	"github.com/dmitrymomot/contactform/pkg/environment"
	"github.com/dmitrymomot/contactform/pkg/httpserver"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

// Service serves the contact form over HTTP. Every page load gets its own
// session; browser actions post to it and changes come back over SSE.
type Service struct {
	cfg          Config
	sessions     *Registry
	views        Views
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewService(cfg Config, sessions *Registry, views Views, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	views = views.withDefaults()
	return &Service{
		cfg:      cfg,
		sessions: sessions,
		views:    views,
		log:      log.With(logger.Component("contact")),
		errorHandler: handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			ErrorPage:  views.ErrorPage,
			ErrorToast: views.ErrorToast,
		}),
	}
}

// Handle returns the module's routes. Mount it at the site root.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware, environment.Middleware(env))
//	r.Mount("/", svc.Handle())
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", httpserver.HealthCheckHandler(s.log, s.sessions.Ready))

	r.Get("/", handler.Wrap(s.page,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Post("/api/check", handler.Wrap(s.check,
		handler.WithBinder[handler.Context, FormSignals](binder.JSON()),
		handler.WithErrorHandler[handler.Context, FormSignals](jsonErrors),
	))

	r.Route("/s/{id}", func(r chi.Router) {
		r.Get("/stream", handler.Wrap(s.stream, sessionRoute[sessionRequest](s)...))
		r.Get("/state", handler.Wrap(s.state,
			handler.WithBinder[handler.Context, sessionRequest](binder.Path(chi.URLParam)),
		))
		r.Post("/input/{field}", handler.Wrap(s.input, signalRoute[fieldRequest](s)...))
		r.Post("/blur/{field}", handler.Wrap(s.blur, signalRoute[fieldRequest](s)...))
		r.Post("/submit", handler.Wrap(s.submit, signalRoute[submitRequest](s)...))
		r.Post("/dismiss", handler.Wrap(s.dismiss, sessionRoute[sessionRequest](s)...))
		r.Post("/fill/{preset}", handler.Wrap(s.fill, sessionRoute[fillRequest](s)...))
	})

	return r
}

// sessionRoute binds path parameters only; the posted signals are ignored.
func sessionRoute[R any](s *Service) []handler.WrapOption[handler.Context, R] {
	return []handler.WrapOption[handler.Context, R]{
		handler.WithBinder[handler.Context, R](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, R](s.errorHandler),
	}
}

// signalRoute binds path parameters and then the posted signals.
func signalRoute[R any](s *Service) []handler.WrapOption[handler.Context, R] {
	return []handler.WrapOption[handler.Context, R]{
		handler.WithBinders[handler.Context, R](binder.Path(chi.URLParam), binder.JSON()),
		handler.WithErrorHandler[handler.Context, R](s.errorHandler),
	}
}

func (s *Service) page(ctx handler.Context, _ struct{}) handler.Response {
	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return handler.Error(httpError(err))
	}

	var presets []string
	if !environment.IsProduction(ctx) {
		presets = contactform.PresetNames()
	}

	ctx.ResponseWriter().Header().Set("Cache-Control", "no-store")
	return handler.Templ(s.views.Page(PageParams{
		SessionID:   sess.ID.String(),
		Signals:     Signals(sess.Form.Snapshot()),
		Presets:     presets,
		DatastarURL: s.cfg.DatastarURL,
	}))
}

// stream sends the full signal set, then every patch the session publishes.
// A stream that falls behind is resubscribed and resynchronised from a new snapshot.
func (s *Service) stream(_ handler.Context, req sessionRequest) handler.Response {
	sess, err := s.sessions.Get(req.Session)
	if err != nil {
		return handler.Error(httpError(err))
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		defer s.sessions.touch(sess)

		for {
			sub := sess.Subscribe(stream)
			err := pump(stream, sess, sub.Receive(stream))
			_ = sub.Close()

			switch {
			case stream.Err() != nil, sess.Expired():
				return nil
			case err != nil:
				return err
			}
			s.log.DebugContext(stream, "stream fell behind, resynchronising", logger.SessionID(sess.ID))
		}
	})
}

func (s *Service) state(_ handler.Context, req sessionRequest) handler.Response {
	sess, err := s.sessions.Get(req.Session)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(newStateResponse(sess.Form.Snapshot()))
}

func (s *Service) input(ctx handler.Context, req fieldRequest) handler.Response {
	sess, field, err := s.lookup(req.Session, req.Field)
	if err != nil {
		return handler.Error(err)
	}
	value, ok := req.Value(field)
	if !ok {
		return handler.Error(handler.NewHTTPError(http.StatusBadRequest, "missing_value"))
	}
	if err := sess.Form.Dispatch(ctx, contactform.Input{Field: field, Value: value}); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Empty()
}

func (s *Service) blur(ctx handler.Context, req fieldRequest) handler.Response {
	sess, field, err := s.lookup(req.Session, req.Field)
	if err != nil {
		return handler.Error(err)
	}
	if err := syncValues(ctx, sess, req.FormSignals, field); err != nil {
		return handler.Error(httpError(err))
	}
	if err := sess.Form.Dispatch(ctx, contactform.Blur{Field: field}); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Empty()
}

func (s *Service) submit(ctx handler.Context, req submitRequest) handler.Response {
	sess, err := s.sessions.Get(req.Session)
	if err != nil {
		return handler.Error(httpError(err))
	}
	if err := syncValues(ctx, sess, req.FormSignals, contactform.Fields...); err != nil {
		return handler.Error(httpError(err))
	}
	if err := sess.Form.Dispatch(ctx, contactform.Submit{}); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Empty()
}

func (s *Service) dismiss(ctx handler.Context, req sessionRequest) handler.Response {
	sess, err := s.sessions.Get(req.Session)
	if err != nil {
		return handler.Error(httpError(err))
	}
	if err := sess.Form.Dispatch(ctx, contactform.DismissBanner{}); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Empty()
}

// fill is a manual testing aid and does not exist in production.
func (s *Service) fill(ctx handler.Context, req fillRequest) handler.Response {
	if environment.IsProduction(ctx) {
		return handler.Error(handler.ErrNotFound)
	}
	sess, err := s.sessions.Get(req.Session)
	if err != nil {
		return handler.Error(httpError(err))
	}
	if err := sess.Form.Dispatch(ctx, contactform.Fill{Preset: req.Preset}); err != nil {
		return handler.Error(httpError(err))
	}
	return handler.Empty()
}

// check validates posted values without a session and reports every failing field.
func (s *Service) check(_ handler.Context, req FormSignals) handler.Response {
	report := contactform.CheckAll(req.Values())
	if report.Valid() {
		return handler.JSON(CheckResponse{Valid: true})
	}

	verr := handler.NewValidationError()
	for _, f := range contactform.Fields {
		if res, ok := report.Results[f]; ok && !res.Valid {
			verr.Add(string(f), res.Message)
		}
	}
	return handler.JSON(verr)
}

// jsonErrors replies to failed API requests with the JSON error envelope.
func jsonErrors(ctx handler.Context, err error) {
	_ = handler.JSONError(err).Render(ctx.ResponseWriter(), ctx.Request())
}

func (s *Service) lookup(id, rawField string) (*Session, contactform.Field, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, "", httpError(err)
	}
	field, err := contactform.ParseField(rawField)
	if err != nil {
		return nil, "", httpError(err)
	}
	return sess, field, nil
}

// syncValues applies posted values that differ from the controller's, so actions
// see what the browser shows even when a debounced input is still in flight.
func syncValues(ctx handler.Context, sess *Session, signals FormSignals, fields ...contactform.Field) error {
	snap := sess.Form.Snapshot()
	for _, f := range fields {
		v, ok := signals.Value(f)
		if !ok || v == snap.Value(f) {
			continue
		}
		if f == contactform.FieldNewsletter && contactform.Checked(v) == snap.Subscribed() {
			continue
		}
		if err := sess.Form.Dispatch(ctx, contactform.Input{Field: f, Value: v}); err != nil {
			return err
		}
	}
	return nil
}

// pump forwards patches until the subscription ends. It returns nil when the
// channel closes and the send error when the client cannot be written to.
func pump(stream handler.StreamContext, sess *Session, updates <-chan broadcast.Message[Patch]) error {
	if err := stream.SendSignals(Signals(sess.Form.Snapshot())); err != nil {
		return err
	}
	for {
		select {
		case <-stream.Done():
			return nil
		case msg, ok := <-updates:
			if !ok {
				return nil
			}
			if err := stream.SendSignals(msg.Data); err != nil {
				return err
			}
		}
	}
}

// httpError maps domain errors onto HTTP statuses, keeping the cause in the chain.
func httpError(err error) error {
	var status handler.HTTPError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		status = handler.NewHTTPError(http.StatusNotFound, "session_not_found")
	case errors.Is(err, contactform.ErrUnknownField):
		status = handler.NewHTTPError(http.StatusNotFound, "unknown_field")
	case errors.Is(err, contactform.ErrUnknownPreset):
		status = handler.NewHTTPError(http.StatusNotFound, "unknown_preset")
	case errors.Is(err, contactform.ErrSubmissionInProgress):
		status = handler.NewHTTPError(http.StatusConflict, "submission_in_progress")
	case errors.Is(err, contactform.ErrSubmissionCompleted):
		status = handler.NewHTTPError(http.StatusConflict, "submission_completed")
	case errors.Is(err, contactform.ErrClosed), errors.Is(err, ErrRegistryClosed):
		status = handler.ErrServiceUnavailable
	default:
		return err
	}
	return fmt.Errorf("%w: %w", status, err)
}
