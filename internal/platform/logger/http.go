package logger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mssola/useragent"

	"njgeo/pkg/requestcontext"
)

// statusWriter captures the status code and byte count written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// AccessMiddleware logs one line per request at debug level.
// Request bodies are never read.
func AccessMiddleware(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			ctx := r.Context()
			start := requestcontext.Now(ctx)
			next.ServeHTTP(sw, r)
			l.DebugContext(ctx, "http_access",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", requestcontext.ClientIP(ctx),
				"client", clientName(requestcontext.UserAgent(ctx)),
				"request_id", requestcontext.RequestID(ctx),
			)
		})
	}
}

// clientName reduces a User-Agent to "<browser>/<version>", or "bot:<name>"
// for crawlers. Raw agent strings are not logged.
func clientName(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if ua.Bot() {
		return "bot:" + name
	}
	if version == "" {
		return name
	}
	return name + "/" + version
}
