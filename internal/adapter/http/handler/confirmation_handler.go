package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bozor/daftar/internal/adapter/http/dto"
	"github.com/bozor/daftar/internal/adapter/http/middleware"
	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/usecase"
)

// ConfirmationService defines the behavior needed by ConfirmationHandler.
type ConfirmationService interface {
	RequestPayment(ctx context.Context, input usecase.RequestPaymentInput) (*usecase.RequestPaymentResult, error)
	Approve(ctx context.Context, confirmationID, reviewerID string) (*domain.PaymentConfirmation, error)
	Reject(ctx context.Context, confirmationID, reviewerID string) (*domain.PaymentConfirmation, error)
	ReviewQueue(ctx context.Context, input usecase.ReviewQueueInput) ([]*domain.ReviewItem, error)
	GetConfirmation(ctx context.Context, id string) (*domain.PaymentConfirmation, error)
}

// ConfirmationHandler handles the payment confirmation workflow.
type ConfirmationHandler struct {
	confirmationUC ConfirmationService
}

// NewConfirmationHandler creates a new ConfirmationHandler.
func NewConfirmationHandler(confirmationUC ConfirmationService) *ConfirmationHandler {
	return &ConfirmationHandler{confirmationUC: confirmationUC}
}

// Request opens a confirmation for an entry. The entry moves to
// pending until the market resolves the request.
func (h *ConfirmationHandler) Request(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entryID := chi.URLParam(r, "id")

	result, err := h.confirmationUC.RequestPayment(r.Context(), usecase.RequestPaymentInput{
		EntryID:     entryID,
		RequestedBy: user.ID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := dto.RequestPaymentResponse{
		Entry:    dto.EntryFromDomain(result.Entry),
		Fallback: result.Fallback,
	}
	if result.Confirmation != nil {
		resp.Confirmation = dto.ConfirmationFromDomain(result.Confirmation)
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Approve resolves a confirmation in the seller's favor.
func (h *ConfirmationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.confirmationUC.Approve)
}

// Reject resolves a confirmation against the seller.
func (h *ConfirmationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.confirmationUC.Reject)
}

func (h *ConfirmationHandler) review(w http.ResponseWriter, r *http.Request, resolve func(ctx context.Context, confirmationID, reviewerID string) (*domain.PaymentConfirmation, error)) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")

	confirmation, err := resolve(r.Context(), id, user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConfirmationFromDomain(confirmation))
}

// Queue lists the caller's market review queue, each row joined with
// the entry under review. market_id is only needed for admins; market
// reviewers default to their own market.
func (h *ConfirmationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	items, err := h.confirmationUC.ReviewQueue(r.Context(), usecase.ReviewQueueInput{
		ReviewerID: user.ID,
		MarketID:   r.URL.Query().Get("market_id"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReviewItemsFromDomain(items))
}

// Get retrieves a single confirmation.
func (h *ConfirmationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	confirmation, err := h.confirmationUC.GetConfirmation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConfirmationFromDomain(confirmation))
}
