package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise-ai/pennywise/internal/api/middleware"
	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/pennywise-ai/pennywise/internal/insights"
	"github.com/pennywise-ai/pennywise/internal/jobs"
	"github.com/pennywise-ai/pennywise/internal/pipeline"
	"github.com/pennywise-ai/pennywise/internal/recurring"
	"github.com/pennywise-ai/pennywise/internal/report"
	"github.com/pennywise-ai/pennywise/internal/store"
	"github.com/rs/zerolog"
)

// TransactionsHandler handles the transaction CRUD endpoints.
type TransactionsHandler struct {
	store     store.Store
	pipeline  *pipeline.Service
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(s store.Store, p *pipeline.Service, pub jobs.Publisher, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		store:     s,
		pipeline:  p,
		publisher: pub,
		log:       log,
	}
}

// ListTransactions handles GET /api/transactions
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	txs, err := h.store.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	flagged := recurring.Flag(txs)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": flagged,
		"count":        len(flagged),
	})
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		RawText string  `json:"rawText"`
		Amount  float64 `json:"amount"`
		Date    string  `json:"date,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := domain.ValidateNewTransaction(req.RawText, req.Amount); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	cls := h.pipeline.CategorizeTransaction(ctx, req.RawText, req.Amount)

	tx := domain.Transaction{
		ID:          uuid.New().String(),
		RawText:     req.RawText,
		Merchant:    cls.Merchant,
		Amount:      req.Amount,
		Date:        date,
		Category:    cls.Category,
		SubCategory: cls.SubCategory,
		Necessity:   cls.Necessity,
		Sentiment:   cls.Sentiment,
	}

	if err := h.store.Append(ctx, tx); err != nil {
		h.log.Error().Err(err).Msg("Failed to store transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to store transaction")
		return
	}

	h.enqueueRefresh(ctx, "transaction_added")

	// Recompute recurring flags so the response already reflects the insert.
	txs, err := h.store.List(ctx)
	if err == nil {
		for _, t := range recurring.Flag(txs) {
			if t.ID == tx.ID {
				tx = t
				break
			}
		}
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// UpdateTransaction handles PATCH /api/transactions/:id
func (h *TransactionsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req struct {
		Merchant    *string  `json:"merchant,omitempty"`
		Amount      *float64 `json:"amount,omitempty"`
		Date        *string  `json:"date,omitempty"`
		Category    *string  `json:"category,omitempty"`
		SubCategory *string  `json:"subCategory,omitempty"`
		Necessity   *string  `json:"necessity,omitempty"`
		Sentiment   *string  `json:"sentiment,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txs, err := h.store.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transaction")
		return
	}

	var tx *domain.Transaction
	for i := range txs {
		if txs[i].ID == id {
			tx = &txs[i]
			break
		}
	}
	if tx == nil {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	if req.Merchant != nil {
		tx.Merchant = *req.Merchant
	}
	if req.Amount != nil {
		if err := domain.ValidateNewTransaction(tx.RawText, *req.Amount); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		tx.Amount = *req.Amount
	}
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid date, want YYYY-MM-DD")
			return
		}
		tx.Date = parsed
	}
	if req.Category != nil {
		c := domain.Category(*req.Category)
		if !c.Valid() {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		tx.Category = c
	}
	if req.SubCategory != nil {
		tx.SubCategory = *req.SubCategory
	}
	if req.Necessity != nil {
		n, ok := domain.ParseNecessity(*req.Necessity)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown necessity")
			return
		}
		tx.Necessity = n
	}
	if req.Sentiment != nil {
		s, ok := domain.ParseSentiment(*req.Sentiment)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown sentiment")
			return
		}
		tx.Sentiment = s
	}

	if err := h.store.Update(ctx, *tx); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	h.enqueueRefresh(ctx, "transaction_updated")

	middleware.WriteJSON(w, http.StatusOK, tx)
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	if err := h.store.Remove(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	h.enqueueRefresh(ctx, "transaction_deleted")

	w.WriteHeader(http.StatusNoContent)
}

// enqueueRefresh publishes an insight refresh job. Best effort: a full queue
// or closed publisher only logs a warning, the write itself already happened.
func (h *TransactionsHandler) enqueueRefresh(ctx context.Context, reason string) {
	if h.publisher == nil {
		return
	}
	job := &jobs.RefreshInsightsJob{Reason: reason}
	if err := h.publisher.PublishRefreshInsights(ctx, job); err != nil {
		h.log.Warn().Err(err).Str("reason", reason).Msg("Failed to enqueue insight refresh")
	}
}

// InsightsHandler handles the insight snapshot endpoints.
type InsightsHandler struct {
	insights  *insights.Service
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(svc *insights.Service, pub jobs.Publisher, log zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{
		insights:  svc,
		publisher: pub,
		log:       log,
	}
}

// GetInsights handles GET /api/insights
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.insights.Latest())
}

// RefreshInsights handles POST /api/insights/refresh
func (h *InsightsHandler) RefreshInsights(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Refresh queue unavailable")
		return
	}

	job := &jobs.RefreshInsightsJob{Reason: "manual"}
	if err := h.publisher.PublishRefreshInsights(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue insight refresh")
		middleware.WriteError(w, http.StatusServiceUnavailable, "Failed to enqueue refresh")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"status": "queued",
		"job_id": job.JobID,
	})
}

// ChatHandler handles POST /api/chat.
type ChatHandler struct {
	insights *insights.Service
	store    store.Store
	log      zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *insights.Service, s store.Store, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		insights: svc,
		store:    s,
		log:      log,
	}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Query is required")
		return
	}

	txs, err := h.store.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load ledger")
		return
	}

	reply := h.insights.Chat(ctx, req.Query, recurring.Flag(txs), time.Now())
	middleware.WriteJSON(w, http.StatusOK, reply)
}

// SummaryHandler handles GET /api/summary.
type SummaryHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(s store.Store, log zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		store: s,
		log:   log,
	}
}

// GetSummary handles GET /api/summary
// The optional ref query parameter (YYYY-MM-DD) anchors the "current month"
// figures; it defaults to today.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref := time.Now()
	if raw := r.URL.Query().Get("ref"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid ref, want YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	txs, err := h.store.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load ledger")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, report.Build(txs, ref))
}
