package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// JSONResponse is the envelope every JSON endpoint replies with.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail is the error member of a JSONResponse. Details is set for
// validation failures only.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSONOption adjusts a JSON response before it is rendered.
type JSONOption func(status *int, body *JSONResponse)

func WithJSONStatus(status int) JSONOption {
	return func(s *int, _ *JSONResponse) { *s = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(_ *int, b *JSONResponse) { b.Meta = meta }
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON replies with v as data. An error or *ErrorDetail becomes the error
// member instead, with a status taken from the error.
//
//	return handler.JSON(snapshot, handler.WithJSONMeta(map[string]any{"session": id}))
func JSON(v any, opts ...JSONOption) Response {
	resp := jsonResponse{status: http.StatusOK}
	switch val := v.(type) {
	case JSONResponse:
		resp.body = val
	case *ErrorDetail, error:
		resp.status, resp.body.Error = errorDetail(val)
	default:
		resp.body.Data = v
	}
	for _, opt := range opts {
		opt(&resp.status, &resp.body)
	}
	return resp
}

// JSONError replies with err as the error member. Values that are neither
// errors nor *ErrorDetail produce an empty 500.
func JSONError(err any, opts ...JSONOption) Response {
	resp := jsonResponse{status: http.StatusInternalServerError}
	switch err.(type) {
	case *ErrorDetail, error:
		resp.status, resp.body.Error = errorDetail(err)
	}
	for _, opt := range opts {
		opt(&resp.status, &resp.body)
	}
	return resp
}

// errorDetail derives the status and error member for v. ValidationError
// maps to 422 with per-field details and HTTPError to its own code; any
// other error is a 500 carrying its message.
func errorDetail(v any) (int, *ErrorDetail) {
	if d, ok := v.(*ErrorDetail); ok {
		return http.StatusInternalServerError, d
	}
	err := v.(error)

	var verr ValidationError
	if errors.As(err, &verr) {
		d := &ErrorDetail{Code: "validation_error", Message: verr.Error()}
		if !verr.IsEmpty() {
			d.Details = maps.Clone(map[string][]string(verr))
		}
		return http.StatusUnprocessableEntity, d
	}
	if herr, ok := AsHTTPError(err); ok {
		return herr.Code, &ErrorDetail{Code: herr.Key, Message: http.StatusText(herr.Code)}
	}
	return http.StatusInternalServerError, &ErrorDetail{Code: "internal_error", Message: err.Error()}
}
