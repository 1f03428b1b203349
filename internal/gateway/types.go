package gateway

import "github.com/foxowl-ops/digital-twin/internal/store"

// Request is a payment submission as received from the caller. Every field is
// client-supplied; fraud flag, latency and status are always derived
// server-side and never accepted from the outside.
type Request struct {
	UserID         string  `json:"user_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	MerchantID     string  `json:"merchant_id"`
	PaymentGateway string  `json:"payment_gateway"`
}

// Result is the outcome returned to the caller. It is deliberately a subset
// of the stored record: the caller gets the decision, not an echo of its own
// input.
type Result struct {
	TransactionID string       `json:"transaction_id"`
	Status        store.Status `json:"status"`
	LatencyMS     int          `json:"latency_ms"`
	IsFraud       store.Flag   `json:"is_fraud"`
}
