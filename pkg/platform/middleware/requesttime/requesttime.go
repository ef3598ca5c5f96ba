// Package requesttime stamps each request with the time it was received, so
// the access log and any handler reading requestcontext.Now agree on "now".
package requesttime

import (
	"net/http"
	"time"

	"njgeo/pkg/requestcontext"
)

// Middleware records time.Now at the start of the request.
var Middleware = WithClock(time.Now)

// WithClock returns the middleware reading from now.
func WithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
