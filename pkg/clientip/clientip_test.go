package clientip_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/logger"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	trusted := []string{"X-Forwarded-For", "X-Real-IP"}
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trusted    []string
		want       string
	}{
		{
			name:       "peer address",
			remoteAddr: "203.0.113.7:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "peer without port",
			remoteAddr: "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "untrusted headers are ignored",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:       "10.0.0.1",
		},
		{
			name:       "first valid forwarded entry",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.1, 198.51.100.2"},
			trusted:    trusted,
			want:       "198.51.100.1",
		},
		{
			name:       "falls through to the next header",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": " 198.51.100.9 "},
			trusted:    trusted,
			want:       "198.51.100.9",
		},
		{
			name:       "ipv6 peer",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "mapped ipv4 is unmapped",
			remoteAddr: "[::ffff:192.0.2.1]:443",
			want:       "192.0.2.1",
		},
		{
			name:       "zone is dropped",
			remoteAddr: "[fe80::1%eth0]:443",
			want:       "fe80::1",
		},
		{
			name:       "nothing valid",
			remoteAddr: "pipe",
			want:       "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(req, tt.trusted...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware("X-Real-IP")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/s/abc/submit", nil)
	req.Header.Set("X-Real-IP", "198.51.100.4")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.4", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(clientip.LoggerExtractor()),
	)

	log.InfoContext(clientip.WithContext(context.Background(), "192.0.2.1"), "session created")
	assert.Contains(t, buf.String(), `"client_ip":"192.0.2.1"`)

	buf.Reset()
	log.InfoContext(context.Background(), "session created")
	assert.NotContains(t, buf.String(), "client_ip")
	assert.Empty(t, clientip.FromContext(nil)) //nolint:staticcheck // nil context is tolerated
}
