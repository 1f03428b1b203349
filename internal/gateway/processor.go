package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foxowl-ops/digital-twin/internal/store"
)

// DeclineLimit is the largest amount the simulated processor approves.
// Amounts above it are declined even when the fraud rule passes. With the
// current FraudThreshold of 900 the fraud rule always fires first, so on its
// own this limit is unreachable; the behaviour is kept as-is and pinned by a
// regression test rather than "fixed".
const DeclineLimit = 1000

// Processor runs one payment through the full pipeline: validation, latency
// simulation, risk scoring, outcome decision and exactly one append to the
// transaction store. It holds no per-request state, so a single Processor is
// safe for concurrent use; each in-flight request waits out its own drawn
// latency without blocking the others.
type Processor struct {
	store   store.Store
	latency LatencyFunc
	score   ScoreFunc
	log     zerolog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLatencyFunc overrides the latency draw. Used by tests and fixed-delay
// load profiles.
func WithLatencyFunc(fn LatencyFunc) Option {
	return func(p *Processor) {
		p.latency = fn
	}
}

// WithScoreFunc overrides the fraud scorer.
func WithScoreFunc(fn ScoreFunc) Option {
	return func(p *Processor) {
		p.score = fn
	}
}

// NewProcessor creates a processor writing to the given store.
func NewProcessor(st store.Store, log zerolog.Logger, opts ...Option) *Processor {
	p := &Processor{
		store:   st,
		latency: UniformLatency,
		score:   ScoreAmount,
		log:     log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process handles a single payment request. Every call, even with identical
// inputs, produces a fresh transaction id and a fresh record; nothing is
// deduplicated or retried. The request runs to completion once validation
// passes: the caller abandoning its context does not abort the simulated
// delay or the store write, so the record still becomes visible to analytics.
func (p *Processor) Process(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	transactionID := uuid.NewString()
	latencyMS := p.latency()

	// The drawn delay is observable end-to-end latency, not just a recorded
	// number: the caller waits it out.
	time.Sleep(time.Duration(latencyMS) * time.Millisecond)

	isFraud := p.score(req.Amount)

	status := store.StatusFailed
	if !bool(isFraud) && req.Amount <= DeclineLimit {
		status = store.StatusSuccess
	}

	rec := &store.Record{
		TransactionID:  transactionID,
		UserID:         req.UserID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		MerchantID:     req.MerchantID,
		Timestamp:      time.Now().UTC(),
		IsFraud:        isFraud,
		PaymentGateway: req.PaymentGateway,
		LatencyMS:      latencyMS,
		Status:         status,
	}

	if err := p.store.Append(context.WithoutCancel(ctx), rec); err != nil {
		return nil, fmt.Errorf("Process: appending transaction %s: %w", transactionID, err)
	}

	p.log.Info().
		Str("transaction_id", transactionID).
		Str("user_id", req.UserID).
		Str("status", string(status)).
		Int("latency_ms", latencyMS).
		Bool("is_fraud", bool(isFraud)).
		Msg("Payment processed")

	return &Result{
		TransactionID: transactionID,
		Status:        status,
		LatencyMS:     latencyMS,
		IsFraud:       isFraud,
	}, nil
}
