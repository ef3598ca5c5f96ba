// Package metadata provides middleware that stamps request-scoped metadata
// (request ID, client IP, User-Agent) onto the request context.
package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"njgeo/pkg/requestcontext"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds caller-supplied request IDs before they reach logs.
const maxRequestIDLen = 128

// RequestID propagates a caller-supplied X-Request-ID or generates a new UUID,
// echoing it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientMetadata records the client address and User-Agent on the context.
// It runs after chi's RealIP, so RemoteAddr already reflects proxy headers.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIP(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP strips the port from RemoteAddr. RealIP leaves a bare address
// without a port, which is returned as is.
func ClientIP(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
