package metadata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njgeo/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	t.Run("generates a uuid when header is absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nj/counties", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagates caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nj/counties", nil)
		req.Header.Set(RequestIDHeader, "trace-abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "trace-abc", seen)
		assert.Equal(t, "trace-abc", rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nj/counties", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
		h.ServeHTTP(httptest.NewRecorder(), req)

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		want   string
	}{
		{name: "ipv4 with port", remote: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "ipv6 with port", remote: "[::1]:5555", want: "::1"},
		{name: "bare address from RealIP", remote: "203.0.113.7", want: "203.0.113.7"},
		{name: "missing", remote: "", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestClientMetadata(t *testing.T) {
	var ip, ua string
	h := ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		ua = requestcontext.UserAgent(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/nj/counties", nil)
	req.RemoteAddr = "198.51.100.4:443"
	req.Header.Set("User-Agent", "curl/8.5.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.4", ip)
	assert.Equal(t, "curl/8.5.0", ua)
}
