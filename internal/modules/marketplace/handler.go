package marketplace

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
)

// Handler exposes the marketplace discovery endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/marketplace", func(r chi.Router) {
		r.Get("/products", h.getProducts)
		r.Get("/trending", h.getTrending)
		r.Get("/feed", h.getFeed)
	})
}

func filtersFromQuery(r *http.Request) Filters {
	q := r.URL.Query()
	return Filters{
		Category:       q.Get("category"),
		ParentCategory: q.Get("parent_category"),
		MinPriceCents:  cast.ToInt64(q.Get("min_price")),
		MaxPriceCents:  cast.ToInt64(q.Get("max_price")),
		Province:       q.Get("province"),
		City:           q.Get("city"),
		VerifiedOnly:   cast.ToBool(q.Get("verified_only")),
		Search:         q.Get("search"),
		SortBy:         q.Get("sort_by"),
		Page:           cast.ToInt(q.Get("page")),
		PageSize:       cast.ToInt(q.Get("page_size")),
	}
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetMarketplaceProducts(r.Context(), filtersFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) getTrending(w http.ResponseWriter, r *http.Request) {
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	trending, err := h.service.GetTrendingProducts(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, trending)
}

func (h *Handler) getFeed(w http.ResponseWriter, r *http.Request) {
	promotedLimit := cast.ToInt(r.URL.Query().Get("promoted_limit"))
	page, feed, err := h.service.GetFeed(r.Context(), filtersFromQuery(r), promotedLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"items":       feed,
		"total":       page.Total,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_pages": page.TotalPages,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
