package promo

import (
	"fmt"

	"mattress-shop/internal/model"
)

// Reason identifies why a promo code was rejected.
type Reason string

const (
	ReasonNotFound     Reason = "not found"
	ReasonInactive     Reason = "inactive"
	ReasonNotYetActive Reason = "not yet active"
	ReasonExpired      Reason = "expired"
	ReasonUsageLimit   Reason = "usage limit reached"
	ReasonBelowMinimum Reason = "below minimum"
)

// ValidationError is returned when a promo code cannot be applied.
type ValidationError struct {
	Reason Reason
	// MinOrderAmount is set for ReasonBelowMinimum, in minor units.
	MinOrderAmount int64
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonNotFound:
		return "Promo code not found"
	case ReasonInactive:
		return "Promo code is inactive"
	case ReasonNotYetActive:
		return "Promo code is not active yet"
	case ReasonExpired:
		return "Promo code has expired"
	case ReasonUsageLimit:
		return "Promo code usage limit has been reached"
	case ReasonBelowMinimum:
		return fmt.Sprintf("Minimum order amount for this promo code is %s", model.FormatMajor(e.MinOrderAmount))
	}
	return "Promo code is invalid"
}

// Is lets errors.Is match on the reason alone.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound     = &ValidationError{Reason: ReasonNotFound}
	ErrInactive     = &ValidationError{Reason: ReasonInactive}
	ErrNotYetActive = &ValidationError{Reason: ReasonNotYetActive}
	ErrExpired      = &ValidationError{Reason: ReasonExpired}
	ErrUsageLimit   = &ValidationError{Reason: ReasonUsageLimit}
	ErrBelowMinimum = &ValidationError{Reason: ReasonBelowMinimum}
)
