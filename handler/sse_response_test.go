package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/handler"
)

func streamRequest(ctx context.Context) *http.Request {
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/s/abc/stream", nil)
	req.Header.Set("Accept", "text/event-stream")
	return req
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires a datastar request", func(t *testing.T) {
		t.Parallel()
		resp := handler.SSE(func(handler.StreamContext) error { return nil })
		err := resp.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/s/abc/stream", nil))

		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("sends signals and components", func(t *testing.T) {
		t.Parallel()
		resp := handler.SSE(func(stream handler.StreamContext) error {
			if err := stream.SendSignals(map[string]any{
				"_submitting": true,
				"_errors":     map[string]any{"email": "Please enter a valid email address"},
			}); err != nil {
				return err
			}
			if err := stream.SendSignal("_banner", ""); err != nil {
				return err
			}
			return stream.SendComponent(textComponent(`<div id="banner"></div>`), handler.WithTarget("#banner"))
		})

		w := httptest.NewRecorder()
		require.NoError(t, resp.Render(w, streamRequest(context.Background())))

		body := w.Body.String()
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"_submitting":true`)
		assert.Contains(t, body, `"_banner":""`)
		assert.Contains(t, body, "datastar-patch-elements")
	})

	t.Run("handler observes client disconnect", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		resp := handler.SSE(func(stream handler.StreamContext) error {
			<-stream.Done()
			return stream.Err()
		})

		go func() { done <- resp.Render(httptest.NewRecorder(), streamRequest(ctx)) }()
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("stream did not stop after disconnect")
		}
	})

	t.Run("handler error is returned", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		resp := handler.SSE(func(handler.StreamContext) error { return boom })
		assert.ErrorIs(t, resp.Render(httptest.NewRecorder(), streamRequest(context.Background())), boom)
	})
}
