package handler

import (
	"context"
	"net/http"
	"strings"

	"mattress-shop/internal/carrier"
	"mattress-shop/internal/model"

	"github.com/rs/zerolog"
)

// CarrierDirectory looks up delivery destinations.
type CarrierDirectory interface {
	SearchCities(ctx context.Context, query string) ([]carrier.City, error)
	Warehouses(ctx context.Context, cityRef, query string) ([]carrier.Warehouse, error)
}

// DeliveryHandler proxies carrier lookups for the checkout form.
type DeliveryHandler struct {
	carrier CarrierDirectory
	logger  zerolog.Logger
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(directory CarrierDirectory, logger zerolog.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		carrier: directory,
		logger:  logger.With().Str("handler", "delivery").Logger(),
	}
}

// Cities handles GET /store/delivery/cities?q= requests.
func (h *DeliveryHandler) Cities(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "query parameter q is required", h.logger)
		return
	}

	cities, err := h.carrier.SearchCities(r.Context(), query)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cities)
}

// Warehouses handles GET /store/delivery/warehouses?city_ref=&q= requests.
func (h *DeliveryHandler) Warehouses(w http.ResponseWriter, r *http.Request) {
	cityRef := strings.TrimSpace(r.URL.Query().Get("city_ref"))
	if cityRef == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "query parameter city_ref is required", h.logger)
		return
	}

	warehouses, err := h.carrier.Warehouses(r.Context(), cityRef, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, warehouses)
}
