package handler

import (
	"net/http"

	"mattress-shop/internal/model"
	"mattress-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PromoHandler handles promo code HTTP requests for the storefront and the admin API.
type PromoHandler struct {
	service service.PromoService
	logger  zerolog.Logger
}

// NewPromoHandler creates a new promo code handler.
func NewPromoHandler(service service.PromoService, logger zerolog.Logger) *PromoHandler {
	return &PromoHandler{
		service: service,
		logger:  logger.With().Str("handler", "promo").Logger(),
	}
}

// Check handles POST /store/promo-codes requests. A code that does not apply is
// reported in the body with valid=false rather than as an HTTP error.
func (h *PromoHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req model.PromoCheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Check(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /admin/promo-codes requests.
func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PromoCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	promo, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, promo)
}

// List handles GET /admin/promo-codes requests.
func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(r)
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid pagination parameters", h.logger)
		return
	}

	promos, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promos)
}

// Update handles PUT /admin/promo-codes/{id} requests.
func (h *PromoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}

	var req model.PromoCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	promo, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promo)
}

// Delete handles DELETE /admin/promo-codes/{id} requests.
func (h *PromoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PromoHandler) promoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid promo code ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
