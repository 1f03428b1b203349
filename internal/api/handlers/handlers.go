package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/foxowl-ops/digital-twin/internal/analytics"
	"github.com/foxowl-ops/digital-twin/internal/api/middleware"
	"github.com/foxowl-ops/digital-twin/internal/gateway"
	"github.com/foxowl-ops/digital-twin/internal/store"
)

// PaymentsHandler handles payment submission endpoints.
type PaymentsHandler struct {
	processor *gateway.Processor
	log       zerolog.Logger
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(processor *gateway.Processor, log zerolog.Logger) *PaymentsHandler {
	return &PaymentsHandler{
		processor: processor,
		log:       log,
	}
}

// ProcessPayment handles POST /api/payments. The response holds only the
// outcome subset; client-supplied fields are not echoed back.
func (h *PaymentsHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req gateway.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.processor.Process(r.Context(), req)
	if err != nil {
		var verr *gateway.ValidationError
		if errors.As(err, &verr) {
			middleware.WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}

		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to process payment")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// TransactionsHandler serves the transaction log.
type TransactionsHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(st store.Store, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		store: st,
		log:   log,
	}
}

// ListTransactions handles GET /api/transactions. It returns every record in
// insertion order, full-scan semantics with no pagination.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	// Return array directly for frontend compatibility
	if records == nil {
		records = []*store.Record{}
	}
	middleware.WriteJSON(w, http.StatusOK, records)
}

// AnalyticsHandler serves aggregate metrics over the transaction log.
type AnalyticsHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(st store.Store, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		store: st,
		log:   log,
	}
}

// GetAnalytics handles GET /api/analytics. The report is recomputed from the
// current store contents on every call; an empty log yields the defined
// empty report, not an error.
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read transaction log")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, analytics.Aggregate(records))
}
