package handler

import "net/http"

// responseFunc adapts a plain function to Response.
type responseFunc func(w http.ResponseWriter, r *http.Request) error

func (f responseFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// Empty replies 204. DataStar actions answered this way patch nothing;
// their effects reach the page over the session stream.
func Empty() Response {
	return EmptyWithStatus(http.StatusNoContent)
}

func EmptyWithStatus(status int) Response {
	return responseFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(status)
		return nil
	})
}

// Error skips rendering and hands err to the route's ErrorHandler.
//
//	if errors.Is(err, ErrSessionNotFound) {
//		return handler.Error(handler.NewHTTPError(http.StatusNotFound, "session_not_found"))
//	}
func Error(err error) Response {
	if err == nil {
		err = ErrNilResponse
	}
	return responseFunc(func(http.ResponseWriter, *http.Request) error { return err })
}
