package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mattress-shop/internal/carrier"
	"mattress-shop/internal/model"
	"mattress-shop/internal/promo"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds every decoded request body.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error to an HTTP error response.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var validationErr *promo.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidPromoCode, validationErr.Error(), logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message, logger)
		return
	}

	if errors.Is(err, carrier.ErrUpstream) {
		logger.Error().Err(err).Msg("upstream failure")
		writeError(w, http.StatusBadGateway, model.ErrCodeUpstreamError, "delivery service is unavailable", logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

func domainStatus(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound, model.ErrCodeInvalidPromoCode:
		return http.StatusNotFound
	case model.ErrCodeDuplicatePromoCode, model.ErrCodeOrderNotPayable:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON decodes a bounded request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// pagination reads the limit and offset query parameters. Missing values are zero.
func pagination(r *http.Request) (limit, offset int, ok bool) {
	query := r.URL.Query()
	var err error
	if s := query.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			return 0, 0, false
		}
	}
	if s := query.Get("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			return 0, 0, false
		}
	}
	return limit, offset, true
}
