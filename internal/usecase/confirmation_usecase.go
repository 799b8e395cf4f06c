package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/infrastructure/metrics"
)

// ConfirmationUseCase orchestrates the payment confirmation workflow:
// a seller's request moves the entry to pending, the market's review
// resolves it to paid or restores the pre-request status.
type ConfirmationUseCase struct {
	txManager        TransactionManager
	entryRepo        EntryRepository
	confirmationRepo ConfirmationRepository
	marketRepo       MarketRepository
	profileRepo      ProfileRepository
	outboxRepo       OutboxRepository
	idGen            IDGenerator
	retrier          Retrier
	metrics          *metrics.Metrics
}

// NewConfirmationUseCase creates a new ConfirmationUseCase.
func NewConfirmationUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	confirmationRepo ConfirmationRepository,
	marketRepo MarketRepository,
	profileRepo ProfileRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *ConfirmationUseCase {
	return &ConfirmationUseCase{
		txManager:        txManager,
		entryRepo:        entryRepo,
		confirmationRepo: confirmationRepo,
		marketRepo:       marketRepo,
		profileRepo:      profileRepo,
		outboxRepo:       outboxRepo,
		idGen:            idGen,
		retrier:          retrier,
		metrics:          metrics,
	}
}

// EntryEdits carries field edits bundled with a payment request.
// Only the status transition is gated by the review; these fields are
// applied directly.
type EntryEdits struct {
	ClientName *string
	Product    *string
	Quantity   *string
	Price      *decimal.Decimal
	Phone      *string
}

// RequestPaymentInput represents a seller marking an entry as paid.
type RequestPaymentInput struct {
	EntryID     string
	RequestedBy string
	Edits       *EntryEdits
}

// RequestPaymentResult is the outcome of a payment request.
// Confirmation is nil when the store has no payment_confirmations
// table and the workflow degraded to a direct paid write.
type RequestPaymentResult struct {
	Confirmation *domain.PaymentConfirmation
	Entry        *domain.Entry
	Fallback     bool
}

// RequestPayment opens a confirmation for an entry and moves it to
// pending. The whole flow runs in one transaction with the entry row
// locked, so concurrent requests against the same entry serialize and
// at most one pending confirmation can exist.
func (uc *ConfirmationUseCase) RequestPayment(ctx context.Context, input RequestPaymentInput) (*RequestPaymentResult, error) {
	var result *RequestPaymentResult

	op := func() error {
		var err error
		result, err = uc.requestPayment(ctx, input)
		return err
	}

	if uc.retrier != nil {
		if err := uc.retrier.Retry(ctx, op); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := op(); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ConfirmationUseCase) requestPayment(ctx context.Context, input RequestPaymentInput) (*RequestPaymentResult, error) {
	start := time.Now()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if entry.SellerID != input.RequestedBy {
		return nil, domain.ErrForbidden
	}

	switch entry.Status {
	case domain.PaymentStatusPaid:
		return nil, domain.ErrEntryPaid
	case domain.PaymentStatusPending:
		return nil, domain.ErrConfirmationPending
	}

	marketID, err := uc.resolveMarket(txCtx, entry)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Duplicate guard runs under the entry lock. A missing table here
	// means the deployment predates the confirmations migration.
	existing, err := uc.confirmationRepo.GetPendingByEntry(txCtx, tx, entry.ID)
	if err != nil && !errors.Is(err, domain.ErrConfirmationNotFound) {
		if errors.Is(err, domain.ErrSchemaOutdated) {
			return uc.requestFallback(txCtx, tx, entry, input.Edits, now)
		}
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConfirmationPending
	}

	confirmation := &domain.PaymentConfirmation{
		ID:              uc.idGen.Generate(),
		EntryID:         entry.ID,
		RequestedBy:     input.RequestedBy,
		MarketID:        marketID,
		RequestedStatus: domain.PaymentStatusPaid,
		CurrentStatus:   entry.Status,
		Status:          domain.ConfirmationStatusPending,
		CreatedAt:       now,
	}

	if err := uc.confirmationRepo.Create(txCtx, tx, confirmation); err != nil {
		if errors.Is(err, domain.ErrSchemaOutdated) {
			return uc.requestFallback(txCtx, tx, entry, input.Edits, now)
		}
		return nil, err
	}

	applyEdits(entry, input.Edits)
	entry.MarketID = &marketID
	entry.Status = domain.PaymentStatusPending
	entry.UpdatedAt = now

	if err := uc.entryRepo.Update(txCtx, tx, entry); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   confirmation.ID,
		AggregateType: domain.AggregateTypeConfirmation,
		EventType:     domain.EventTypeConfirmationRequested,
		Payload: map[string]any{
			"confirmation_id": confirmation.ID,
			"entry_id":        entry.ID,
			"market_id":       marketID,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ConfirmationsRequested.Inc()
		uc.metrics.ConfirmationDuration.Observe(time.Since(start).Seconds())
	}

	return &RequestPaymentResult{Confirmation: confirmation, Entry: entry}, nil
}

// requestFallback writes the paid status directly when the backing
// store has no payment_confirmations table. Backward-compatibility
// escape hatch for deployments that have not run the migration.
func (uc *ConfirmationUseCase) requestFallback(ctx context.Context, tx Transaction, entry *domain.Entry, edits *EntryEdits, now time.Time) (*RequestPaymentResult, error) {
	applyEdits(entry, edits)
	entry.Status = domain.PaymentStatusPaid
	entry.UpdatedAt = now

	if err := uc.entryRepo.Update(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FallbackWrites.Inc()
	}

	return &RequestPaymentResult{Entry: entry, Fallback: true}, nil
}

// resolveMarket returns the entry's market ID, falling back to a
// name lookup against the registry using the stored client name.
func (uc *ConfirmationUseCase) resolveMarket(ctx context.Context, entry *domain.Entry) (string, error) {
	if entry.MarketID != nil && *entry.MarketID != "" {
		return *entry.MarketID, nil
	}

	market, err := uc.marketRepo.GetByName(ctx, entry.ClientName)
	if err != nil {
		return "", err
	}

	return market.ID, nil
}

// Approve resolves a pending confirmation in the seller's favor. The
// entry always lands on paid regardless of the requested status.
func (uc *ConfirmationUseCase) Approve(ctx context.Context, confirmationID, reviewerID string) (*domain.PaymentConfirmation, error) {
	return uc.review(ctx, confirmationID, reviewerID, domain.ConfirmationStatusApproved)
}

// Reject resolves a pending confirmation against the seller and
// restores the entry's pre-request payment status.
func (uc *ConfirmationUseCase) Reject(ctx context.Context, confirmationID, reviewerID string) (*domain.PaymentConfirmation, error) {
	return uc.review(ctx, confirmationID, reviewerID, domain.ConfirmationStatusRejected)
}

func (uc *ConfirmationUseCase) review(ctx context.Context, confirmationID, reviewerID string, outcome domain.ConfirmationStatus) (*domain.PaymentConfirmation, error) {
	start := time.Now()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	confirmation, err := uc.confirmationRepo.GetByIDForUpdate(txCtx, tx, confirmationID)
	if err != nil {
		return nil, err
	}

	if !confirmation.IsPending() {
		return nil, domain.ErrConfirmationResolved
	}

	if err := uc.authorizeReviewer(txCtx, reviewerID, confirmation.MarketID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entryStatus := domain.PaymentStatusPaid
	eventType := domain.EventTypeConfirmationApproved
	if outcome == domain.ConfirmationStatusRejected {
		entryStatus = confirmation.CurrentStatus
		eventType = domain.EventTypeConfirmationRejected
	}

	if confirmation.EntryID != "" && entryStatus.IsValid() {
		if _, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, confirmation.EntryID); err != nil {
			return nil, err
		}
		if err := uc.entryRepo.UpdateStatus(txCtx, tx, confirmation.EntryID, entryStatus, now); err != nil {
			return nil, err
		}
	}

	if err := uc.confirmationRepo.UpdateStatus(txCtx, tx, confirmation.ID, outcome, reviewerID, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   confirmation.ID,
		AggregateType: domain.AggregateTypeConfirmation,
		EventType:     eventType,
		Payload: map[string]any{
			"confirmation_id": confirmation.ID,
			"entry_id":        confirmation.EntryID,
			"market_id":       confirmation.MarketID,
			"entry_status":    string(entryStatus),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	confirmation.Status = outcome
	confirmation.ReviewedBy = &reviewerID
	confirmation.ReviewedAt = &now

	if uc.metrics != nil {
		switch outcome {
		case domain.ConfirmationStatusApproved:
			uc.metrics.ConfirmationsApproved.Inc()
		case domain.ConfirmationStatusRejected:
			uc.metrics.ConfirmationsRejected.Inc()
		}
		uc.metrics.ConfirmationDuration.Observe(time.Since(start).Seconds())
	}

	return confirmation, nil
}

// ReviewQueueInput represents input for listing a market's pending
// confirmations. MarketID is optional for market-role reviewers, who
// default to their own market.
type ReviewQueueInput struct {
	ReviewerID string
	MarketID   string
	Limit      int
	Offset     int
}

// ReviewQueue lists pending confirmations awaiting the market's
// review, each joined with its entry. A market-role reviewer only
// sees their own market's queue; admins name any market. Callers
// re-fetch this list after every approve or reject.
func (uc *ConfirmationUseCase) ReviewQueue(ctx context.Context, input ReviewQueueInput) ([]*domain.ReviewItem, error) {
	profile, err := uc.reviewerProfile(ctx, input.ReviewerID)
	if err != nil {
		return nil, err
	}

	marketID := input.MarketID
	if profile.Role != domain.RoleAdmin {
		if profile.MarketID == nil || *profile.MarketID == "" {
			return nil, domain.ErrForbidden
		}
		if marketID == "" {
			marketID = *profile.MarketID
		} else if marketID != *profile.MarketID {
			return nil, domain.ErrForbidden
		}
	} else if marketID == "" {
		return nil, domain.ErrMissingMarketID
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.confirmationRepo.ListPendingByMarket(ctx, marketID, limit, offset)
}

// authorizeReviewer checks that the reviewer belongs to the market a
// confirmation is addressed to. Role checks at the transport layer
// only gate the verb; this is the two-party constraint itself, so a
// market cannot resolve another market's confirmations.
func (uc *ConfirmationUseCase) authorizeReviewer(ctx context.Context, reviewerID, marketID string) error {
	profile, err := uc.reviewerProfile(ctx, reviewerID)
	if err != nil {
		return err
	}

	if profile.Role == domain.RoleAdmin {
		return nil
	}
	if profile.MarketID == nil || *profile.MarketID != marketID {
		return domain.ErrForbidden
	}

	return nil
}

func (uc *ConfirmationUseCase) reviewerProfile(ctx context.Context, reviewerID string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	return profile, nil
}

// GetConfirmation retrieves a confirmation by ID.
func (uc *ConfirmationUseCase) GetConfirmation(ctx context.Context, id string) (*domain.PaymentConfirmation, error) {
	return uc.confirmationRepo.GetByID(ctx, id)
}

func applyEdits(entry *domain.Entry, edits *EntryEdits) {
	if edits == nil {
		return
	}

	if edits.ClientName != nil {
		entry.ClientName = *edits.ClientName
	}
	if edits.Product != nil {
		entry.Product = *edits.Product
	}
	if edits.Quantity != nil {
		entry.Quantity = *edits.Quantity
	}
	if edits.Price != nil {
		entry.Price = *edits.Price
		entry.Total = *edits.Price
	}
	if edits.Phone != nil {
		entry.Phone = *edits.Phone
	}
}
