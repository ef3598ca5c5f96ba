// Package shared holds response helpers used by every module handler.
package shared

import (
	"log/slog"
	"net/http"

	"njgeo/internal/paging"
	dErrors "njgeo/pkg/domain-errors"
	"njgeo/pkg/platform/httputil"
	"njgeo/pkg/requestcontext"
)

// WritePage writes page wrapped in the standard data/links/meta envelope.
// Links are rooted at baseURL plus the request path.
func WritePage[T any](w http.ResponseWriter, r *http.Request, baseURL string, page paging.Page[T]) {
	httputil.WriteJSON(w, http.StatusOK, paging.NewEnvelope(page.Items, page.Meta, baseURL, r.URL.Path))
}

// WriteError logs err at a level matching its code and writes the error envelope.
func WriteError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound:
		logger.DebugContext(ctx, "query matched no rows", "request_id", requestID, "error", err.Error())
	case dErrors.CodeBadRequest:
		logger.WarnContext(ctx, "invalid request", "request_id", requestID, "error", err.Error())
	default:
		logger.ErrorContext(ctx, "query failed", "request_id", requestID, "path", r.URL.Path, "error", err.Error())
	}
	httputil.WriteError(w, err)
}
