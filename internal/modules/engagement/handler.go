package engagement

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes engagement instrumentation endpoints. Tracking endpoints
// always answer 204: the caller is a page render and must not care whether
// the write landed.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/engagement", func(r chi.Router) {
		r.Post("/events", h.recordEvent)
		r.Post("/promoted/impressions", h.trackImpressions)
		r.Post("/promoted/click", h.trackClick)
	})
}

func (h *Handler) recordEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type      string  `json:"type"`
		ShopID    string  `json:"shop_id"`
		ProductID *string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	shopID, err := uuid.Parse(body.ShopID)
	if err != nil {
		http.Error(w, "invalid shop_id", http.StatusBadRequest)
		return
	}
	var productID *uuid.UUID
	if body.ProductID != nil {
		pid, err := uuid.Parse(*body.ProductID)
		if err != nil {
			http.Error(w, "invalid product_id", http.StatusBadRequest)
			return
		}
		productID = &pid
	}
	if err := h.service.RecordEvent(r.Context(), EventType(body.Type), shopID, productID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) trackImpressions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PromotionIDs []string `json:"promotion_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ids := make([]uuid.UUID, 0, len(body.PromotionIDs))
	for _, raw := range body.PromotionIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	h.service.TrackPromotedImpressions(r.Context(), ids)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) trackClick(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PromotionID string `json:"promotion_id"`
		ShopID      string `json:"shop_id"`
		ProductID   string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	promotionID, err := uuid.Parse(body.PromotionID)
	if err != nil {
		http.Error(w, "invalid promotion_id", http.StatusBadRequest)
		return
	}
	shopID, err := uuid.Parse(body.ShopID)
	if err != nil {
		http.Error(w, "invalid shop_id", http.StatusBadRequest)
		return
	}
	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		http.Error(w, "invalid product_id", http.StatusBadRequest)
		return
	}
	h.service.TrackPromotedClick(r.Context(), promotionID, shopID, productID)
	w.WriteHeader(http.StatusNoContent)
}
