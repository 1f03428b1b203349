package gateway

import (
	"fmt"
	"math"
)

// ValidationError reports a rejected payment request. A request that fails
// validation writes no record and incurs no simulated latency.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payment request: %s %s", e.Field, e.Reason)
}

// Validate checks the caller-supplied fields of a payment request.
func (r Request) Validate() error {
	if r.UserID == "" {
		return &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if r.Currency == "" {
		return &ValidationError{Field: "currency", Reason: "is required"}
	}
	if r.MerchantID == "" {
		return &ValidationError{Field: "merchant_id", Reason: "is required"}
	}
	if r.PaymentGateway == "" {
		return &ValidationError{Field: "payment_gateway", Reason: "is required"}
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be a finite number"}
	}
	if r.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}
