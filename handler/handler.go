package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/contactform/pkg/binder"
)

// ErrNilResponse is reported when a HandlerFunc returns no Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HandlerFunc handles a request already bound into R.
//
//	func (s *Service) blur(ctx handler.Context, req fieldRequest) handler.Response {
//		if err := s.dispatch(ctx, req.Session, contactform.Blur{Field: req.Field}); err != nil {
//			return handler.Error(err)
//		}
//		return handler.Empty()
//	}
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response writes itself to w. A returned error goes to the route's
// ErrorHandler, which can only change the status if nothing was written yet.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from r. See package binder.
type Bind func(r *http.Request, v any) error

// ErrorHandler answers a request whose binding, handler or render failed.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc. In WithDecorators the first one runs first.
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption configures a route built by Wrap.
type WrapOption[C Context, R any] func(*route[C, R])

// WithBinder makes b the only binder of the route.
func WithBinder[C Context, R any](b Bind) WrapOption[C, R] {
	return func(rt *route[C, R]) {
		if b != nil {
			rt.binders = []Bind{b}
		}
	}
}

// WithBinders appends binders run in order. Binders that report
// binder.ErrBinderNotApplicable are skipped.
//
//	handler.WithBinders[handler.Context, fieldRequest](binder.Path(chi.URLParam), binder.JSON())
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(rt *route[C, R]) {
		rt.binders = append(rt.binders, binders...)
	}
}

func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(rt *route[C, R]) {
		if h != nil {
			rt.onError = h
		}
	}
}

// WithContextFactory is required when C is not the Context NewContext returns.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(rt *route[C, R]) {
		if f != nil {
			rt.newContext = f
		}
	}
}

func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(rt *route[C, R]) {
		rt.decorators = append(rt.decorators, decorators...)
	}
}

type route[C Context, R any] struct {
	handle     HandlerFunc[C, R]
	binders    []Bind
	decorators []Decorator[C, R]
	onError    ErrorHandler[C]
	newContext func(http.ResponseWriter, *http.Request) C
}

// Wrap adapts h to net/http: it builds the context, binds R, calls h and
// renders the response, sending every failure to the error handler.
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	rt := &route[C, R]{
		handle:     h,
		onError:    plainError[C],
		newContext: defaultContext[C],
	}
	for _, opt := range opts {
		opt(rt)
	}
	for i := len(rt.decorators) - 1; i >= 0; i-- {
		rt.handle = rt.decorators[i](rt.handle)
	}
	return rt.serve
}

func (rt *route[C, R]) serve(w http.ResponseWriter, r *http.Request) {
	ctx := rt.newContext(w, r)

	req, err := rt.bind(r)
	if err != nil {
		rt.onError(ctx, err)
		return
	}

	resp := rt.handle(ctx, req)
	if resp == nil {
		err = ErrNilResponse
	} else {
		err = resp.Render(w, r)
	}
	if err != nil {
		rt.onError(ctx, err)
	}
}

func (rt *route[C, R]) bind(r *http.Request) (R, error) {
	var req R
	for _, b := range rt.binders {
		err := b(r, &req)
		if errors.Is(err, binder.ErrBinderNotApplicable) {
			continue
		}
		if err != nil {
			return req, err
		}
	}
	return req, nil
}

func defaultContext[C Context](w http.ResponseWriter, r *http.Request) C {
	c, ok := any(NewContext(w, r)).(C)
	if !ok {
		var zero C
		panic(fmt.Sprintf("handler: %T needs WithContextFactory", zero))
	}
	return c
}

// plainError is the error handler of routes that configure none.
func plainError[C Context](ctx C, err error) {
	if herr, ok := AsHTTPError(err); ok {
		http.Error(ctx.ResponseWriter(), herr.Key, herr.Code)
		return
	}
	http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
}
