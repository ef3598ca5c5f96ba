package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"njgeo/internal/county/models"
	"njgeo/internal/paging"
	"njgeo/internal/transport/http/shared"
)

// Service defines the county queries served over HTTP.
type Service interface {
	List(ctx context.Context, p paging.Params) (paging.Page[models.County], error)
	Get(ctx context.Context, geoid string) (paging.Page[models.County], error)
}

// Handler serves the /nj/counties endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	baseURL string
}

// New creates a county Handler. baseURL prefixes envelope links and may be empty.
func New(service Service, logger *slog.Logger, baseURL string) *Handler {
	return &Handler{service: service, logger: logger, baseURL: baseURL}
}

// Register registers the county routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/nj/counties", h.handleList)
	r.Get("/nj/counties/{GEOID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	params, err := paging.ParseParams(r.URL.Query())
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	page, err := h.service.List(r.Context(), params)
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	shared.WritePage(w, r, h.baseURL, page)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Get(r.Context(), chi.URLParam(r, "GEOID"))
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	shared.WritePage(w, r, h.baseURL, page)
}
