// Package requestcontext carries request-scoped values set by middleware.
//
// It has no net/http dependency so services and the CLI can read the same
// values without importing transport code.
package requestcontext

import (
	"context"
	"time"
)

type key int

const (
	clientIPKey key = iota
	userAgentKey
	requestIDKey
	requestTimeKey
)

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// ClientIP returns the client address recorded for the request, or "".
func ClientIP(ctx context.Context) string {
	ip, _ := value[string](ctx, clientIPKey)
	return ip
}

// UserAgent returns the User-Agent recorded for the request, or "".
func UserAgent(ctx context.Context) string {
	ua, _ := value[string](ctx, userAgentKey)
	return ua
}

func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, clientIP)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// RequestID returns the correlation ID, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey)
	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// Now returns the time the request was received. CLI queries have no request
// time and get the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := value[time.Time](ctx, requestTimeKey); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}
