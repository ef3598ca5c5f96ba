package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"njgeo/internal/municipality/models"
	"njgeo/internal/paging"
	"njgeo/internal/transport/http/shared"
)

// Service defines the municipality queries served over HTTP.
type Service interface {
	DefaultYear() int
	List(ctx context.Context, year int, p paging.Params) (paging.Page[models.Snapshot], error)
	Get(ctx context.Context, geoid string, year int) (paging.Page[models.Snapshot], error)
	Crosswalk(ctx context.Context, year, yearRef int, p paging.Params) (paging.Page[models.Xref], error)
}

// Handler serves the /nj/municipalities and /nj/municipality_xrefs endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	baseURL string
}

// New creates a municipality Handler. baseURL prefixes envelope links and may be empty.
func New(service Service, logger *slog.Logger, baseURL string) *Handler {
	return &Handler{service: service, logger: logger, baseURL: baseURL}
}

// Register registers the municipality routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/nj/municipalities", h.handleList)
	r.Get("/nj/municipalities/{year}", h.handleList)
	r.Get("/nj/municipalities/{year}/{GEOID}", h.handleGet)
	r.Get("/nj/municipality_xrefs/{year_ref}/{year}", h.handleCrosswalk)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	year := h.service.DefaultYear()
	if raw := chi.URLParam(r, "year"); raw != "" {
		var err error
		if year, err = models.ParseYear(raw, "year"); err != nil {
			shared.WriteError(h.logger, w, r, err)
			return
		}
	}
	params, err := paging.ParseParams(r.URL.Query())
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), year, params)
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	shared.WritePage(w, r, h.baseURL, page)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	year, err := models.ParseYear(chi.URLParam(r, "year"), "year")
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}

	page, err := h.service.Get(r.Context(), chi.URLParam(r, "GEOID"), year)
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	shared.WritePage(w, r, h.baseURL, page)
}

func (h *Handler) handleCrosswalk(w http.ResponseWriter, r *http.Request) {
	yearRef, err := models.ParseYear(chi.URLParam(r, "year_ref"), "reference year")
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	year, err := models.ParseYear(chi.URLParam(r, "year"), "year")
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	params, err := paging.ParseParams(r.URL.Query())
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}

	page, err := h.service.Crosswalk(r.Context(), year, yearRef, params)
	if err != nil {
		shared.WriteError(h.logger, w, r, err)
		return
	}
	shared.WritePage(w, r, h.baseURL, page)
}
