package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeInvalidPromoCode     = "INVALID_PROMO_CODE"
	ErrCodeDuplicatePromoCode   = "DUPLICATE_PROMO_CODE"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeSizeNotFound         = "SIZE_NOT_FOUND"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeOrderNotPayable      = "ORDER_NOT_PAYABLE"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeUpstreamError        = "UPSTREAM_ERROR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrSizeNotFound         = NewDomainError(ErrCodeSizeNotFound, "Selected size is not available for this product")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPaymentMethod = NewDomainError(ErrCodeInvalidPaymentMethod, "Unsupported payment method")
	ErrInvalidStatus        = NewDomainError(ErrCodeInvalidStatus, "Unsupported order status")
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrPromoCodeNotFound    = NewDomainError(ErrCodeInvalidPromoCode, "Promo code not found")
	ErrDuplicatePromoCode   = NewDomainError(ErrCodeDuplicatePromoCode, "Promo code already exists")
)
