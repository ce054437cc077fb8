package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/starfederation/datastar-go/datastar"
)

// Context is the request's context.Context plus the request and its writer.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// SSE is nil unless the request came from DataStar. The first call
	// writes the event-stream headers.
	SSE() *datastar.ServerSentEventGenerator
}

func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &requestContext{Context: r.Context(), w: w, r: r}
}

type requestContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request

	sseOnce sync.Once
	sse     *datastar.ServerSentEventGenerator
}

func (c *requestContext) Request() *http.Request { return c.r }
func (c *requestContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *requestContext) SSE() *datastar.ServerSentEventGenerator {
	c.sseOnce.Do(func() {
		if IsDataStar(c.r) {
			c.sse = datastar.NewSSE(c.w, c.r)
		}
	})
	return c.sse
}
