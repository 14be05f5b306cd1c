package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"mattress-shop/internal/model"
	"mattress-shop/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebhookReconciler applies gateway notifications to orders.
type WebhookReconciler interface {
	HandleWebhook(ctx context.Context, body []byte) (*payment.Acknowledgement, error)
}

// PaymentInitiator prepares signed widget parameters for an order.
type PaymentInitiator interface {
	Initiate(ctx context.Context, orderID uuid.UUID) (*payment.WidgetParams, error)
}

// PaymentHandler handles WayForPay HTTP requests.
type PaymentHandler struct {
	reconciler WebhookReconciler
	initiator  PaymentInitiator
	logger     zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(reconciler WebhookReconciler, initiator PaymentInitiator, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		reconciler: reconciler,
		initiator:  initiator,
		logger:     logger.With().Str("handler", "payment").Logger(),
	}
}

// Webhook handles POST /store/payments/webhook requests from the gateway.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "failed to read request body", h.logger)
		return
	}

	ack, err := h.reconciler.HandleWebhook(r.Context(), body)
	if err != nil {
		if errors.Is(err, payment.ErrMalformedNotification) || errors.Is(err, payment.ErrInvalidSignature) {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, err.Error(), h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ack)
}

// Initiate handles POST /store/payments/initiate/{id} requests.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid order ID format", h.logger)
		return
	}

	params, err := h.initiator.Initiate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, params)
}
