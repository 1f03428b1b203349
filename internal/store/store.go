package store

import (
	"context"
	"fmt"
	"time"
)

// Status is the terminal outcome of a processed payment.
type Status string

const (
	// StatusSuccess indicates the payment was approved.
	StatusSuccess Status = "success"
	// StatusFailed indicates the payment was declined or flagged.
	StatusFailed Status = "failed"
)

// Flag is a boolean that travels as 0/1 in JSON and in storage, matching the
// wire contract of the fraud field.
type Flag bool

// MarshalJSON implements json.Marshaler.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON implements json.Unmarshaler. Accepts 0/1 as well as JSON
// booleans.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "false":
		*f = false
	case "1", "true":
		*f = true
	default:
		return fmt.Errorf("Flag: invalid value %q", data)
	}
	return nil
}

// Record is one processed transaction, the sole persisted entity. A record is
// immutable once written: the log is append-only with no updates or deletes,
// and transaction ids are unique for the life of the store.
type Record struct {
	TransactionID  string    `json:"transaction_id"`
	UserID         string    `json:"user_id"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	MerchantID     string    `json:"merchant_id"`
	Timestamp      time.Time `json:"timestamp"`
	IsFraud        Flag      `json:"is_fraud"`
	PaymentGateway string    `json:"payment_gateway"`
	LatencyMS      int       `json:"latency_ms"`
	Status         Status    `json:"status"`
}

// Store is the append-only transaction log. Implementations must serialize
// appends so concurrent writers cannot corrupt the set or slip in a duplicate
// id, and ListAll must return only fully committed records.
type Store interface {
	// Append writes one record. It returns a DuplicateIDError if the
	// transaction id already exists and a PersistenceError if the backing
	// storage rejected the write.
	Append(ctx context.Context, rec *Record) error

	// ListAll returns every record in insertion order. It never mutates the
	// log and reflects all appends completed at the time of the call.
	ListAll(ctx context.Context) ([]*Record, error)

	// Close releases the underlying storage resources.
	Close() error
}
