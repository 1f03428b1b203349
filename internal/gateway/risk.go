package gateway

import "github.com/foxowl-ops/digital-twin/internal/store"

// FraudThreshold is the amount above which a payment is flagged as fraud, in
// the request's stated currency units with no conversion. The rule is a
// stand-in for a real scoring model.
const FraudThreshold = 900

// ScoreFunc maps an amount to a fraud flag.
type ScoreFunc func(amount float64) store.Flag

// ScoreAmount is the default scorer. Pure and deterministic: any numeric
// amount is accepted, positivity is enforced upstream by validation.
func ScoreAmount(amount float64) store.Flag {
	return store.Flag(amount > FraudThreshold)
}
