// Package analytics derives summary metrics and distributions from the full
// transaction log. Aggregation is a pure function over a snapshot of the
// store: nothing is cached between calls, so every report reflects the log
// at the moment the caller fetched it.
package analytics

import (
	"github.com/foxowl-ops/digital-twin/internal/gateway"
	"github.com/foxowl-ops/digital-twin/internal/store"
)

// Fixed latency histogram: ten equal buckets tiling [MinLatencyMS, MaxLatencyMS).
const (
	bucketCount = 10
	bucketWidth = (gateway.MaxLatencyMS - gateway.MinLatencyMS) / bucketCount
)

// LatencyBucket is one histogram bucket over the half-open range
// [FromMS, ToMS).
type LatencyBucket struct {
	FromMS int `json:"from_ms"`
	ToMS   int `json:"to_ms"`
	Count  int `json:"count"`
}

// FraudShare is the flagged vs clean record counts, for proportion display.
type FraudShare struct {
	Fraud int `json:"fraud"`
	Legit int `json:"legit"`
}

// Report is the aggregate view of the transaction log.
//
// AverageLatencyMS and FraudRatePct are nil when the log is empty: the means
// are undefined for zero records and the caller renders an empty state, not
// an error.
type Report struct {
	TotalTransactions   int                  `json:"total_transactions"`
	AverageLatencyMS    *float64             `json:"average_latency_ms"`
	TotalAmount         float64              `json:"total_amount"`
	FraudRatePct        *float64             `json:"fraud_rate_pct"`
	LatencyDistribution []LatencyBucket      `json:"latency_distribution"`
	AmountByStatus      map[string][]float64 `json:"amount_by_status"`
	FraudShare          FraudShare           `json:"fraud_share"`
}

// Aggregate computes the report over the given records. The empty-bucket
// skeleton and both status groups are always present so a zero-record report
// still carries the full shape.
func Aggregate(records []*store.Record) *Report {
	report := &Report{
		TotalTransactions:   len(records),
		LatencyDistribution: make([]LatencyBucket, bucketCount),
		AmountByStatus: map[string][]float64{
			string(store.StatusSuccess): {},
			string(store.StatusFailed):  {},
		},
	}

	for i := range report.LatencyDistribution {
		report.LatencyDistribution[i].FromMS = gateway.MinLatencyMS + i*bucketWidth
		report.LatencyDistribution[i].ToMS = gateway.MinLatencyMS + (i+1)*bucketWidth
	}

	if len(records) == 0 {
		return report
	}

	var latencySum int
	var fraudCount int

	for _, rec := range records {
		latencySum += rec.LatencyMS
		report.TotalAmount += rec.Amount

		if rec.IsFraud {
			fraudCount++
		}

		report.AmountByStatus[string(rec.Status)] = append(
			report.AmountByStatus[string(rec.Status)], rec.Amount)

		idx := (rec.LatencyMS - gateway.MinLatencyMS) / bucketWidth
		if idx < 0 {
			idx = 0
		}
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		report.LatencyDistribution[idx].Count++
	}

	avg := float64(latencySum) / float64(len(records))
	report.AverageLatencyMS = &avg

	rate := 100 * float64(fraudCount) / float64(len(records))
	report.FraudRatePct = &rate

	report.FraudShare = FraudShare{
		Fraud: fraudCount,
		Legit: len(records) - fraudCount,
	}

	return report
}
