package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

var ErrSSENotInitialized = errors.New("SSE not initialized for this request")

// StreamContext is the Context of an open DataStar stream.
type StreamContext interface {
	Context

	// SendSignals merges signals into the client store. Nested maps patch
	// nested signals and a nil value removes one.
	SendSignals(signals map[string]any) error
	SendSignal(name string, value any) error
	// SendComponent patches rendered HTML into the page.
	SendComponent(component TemplComponent, opts ...TemplOption) error
}

type stream struct {
	Context
	gen *datastar.ServerSentEventGenerator
}

func (s stream) SendSignals(signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return s.gen.PatchSignals(data)
}

func (s stream) SendSignal(name string, value any) error {
	return s.SendSignals(map[string]any{name: value})
}

func (s stream) SendComponent(component TemplComponent, opts ...TemplOption) error {
	return s.gen.PatchElementTempl(component, opts...)
}

// SSEHandler runs until the client disconnects or it returns.
type SSEHandler func(ctx StreamContext) error

type sseResponse SSEHandler

func (h sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "datastar_required")
	}
	ctx := NewContext(w, r)
	gen := ctx.SSE()
	if gen == nil {
		return ErrSSENotInitialized
	}
	return h(stream{Context: ctx, gen: gen})
}

// SSE keeps the response open as a DataStar event stream driven by h.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case patch := <-updates:
//				if err := stream.SendSignals(patch); err != nil {
//					return err
//				}
//			}
//		}
//	})
func SSE(h SSEHandler) Response {
	return sseResponse(h)
}
