// Package handler provides typed HTTP handlers with DataStar-aware responses.
//
// A HandlerFunc receives a Context and a request struct filled by binders and
// returns a Response. Wrap turns it into an http.HandlerFunc:
//
//	type InputRequest struct {
//		Session string `path:"id"`
//		Field   string `path:"field"`
//	}
//
//	func (h *Handlers) input(ctx handler.Context, req InputRequest) handler.Response {
//		if err := h.dispatch(ctx, req); err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.Empty()
//	}
//
//	r.Post("/s/{id}/input/{field}", handler.Wrap(h.input,
//		handler.WithBinders[handler.Context, InputRequest](
//			binder.Path(chi.URLParam),
//			binder.JSON(),
//		),
//		handler.WithErrorHandler[handler.Context, InputRequest](errorHandler),
//	))
//
// # Responses
//
//	handler.JSON(data)              // {"data": ...}
//	handler.JSONError(err)          // {"error": ...} with status from HTTPError or ValidationError
//	handler.Templ(component, opts)  // HTML, or an element patch for DataStar requests
//	handler.Empty()                 // 204
//	handler.SSE(fn)                 // long-lived DataStar stream
//
// # Streams
//
// SSE hands the function a StreamContext that patches signals and elements
// until the client disconnects:
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		for msg := range updates {
//			if err := stream.SendSignals(msg); err != nil {
//				return err
//			}
//		}
//		return nil
//	})
//
// # Errors
//
// HTTPError carries a status code and key; ValidationError carries per-field
// messages. NewErrorHandler renders either as an error page, or as a toast
// patch when the request came from DataStar, and logs it with the request ID.
package handler
