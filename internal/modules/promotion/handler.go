package promotion

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
)

// Handler exposes promotion HTTP endpoints. The create endpoint is the sink
// for payment-confirmed events from the payment collaborator.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/promotions", func(r chi.Router) {
		r.Post("/", h.createPromotion)
		r.Get("/shop/{shopID}", h.listShopPromotions)
		r.Get("/products", h.getPromotedProducts)
		r.Get("/violations", h.getContentViolations)
		r.Post("/{id}/cancel", h.cancelPromotion)
	})
}

func (h *Handler) createPromotion(w http.ResponseWriter, r *http.Request) {
	var req CreatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNotShopProduct) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) listShopPromotions(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListShopPromotions(r.Context(), chi.URLParam(r, "shopID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, listings)
}

func (h *Handler) getPromotedProducts(w http.ResponseWriter, r *http.Request) {
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	promoted, err := h.service.GetPromotedProducts(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, promoted)
}

func (h *Handler) getContentViolations(w http.ResponseWriter, r *http.Request) {
	violations, err := h.service.GetContentViolations(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, violations)
}

func (h *Handler) cancelPromotion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ShopID string `json:"shop_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cancelled, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"), body.ShopID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
