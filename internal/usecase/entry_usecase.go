package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/infrastructure/metrics"
)

// PaymentRequester is the confirmation workflow as seen by the entry
// store: a status edit requesting paid is handed over instead of
// written directly.
type PaymentRequester interface {
	RequestPayment(ctx context.Context, input RequestPaymentInput) (*RequestPaymentResult, error)
}

// EntryUseCase handles sale entry CRUD.
type EntryUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	payments  PaymentRequester
	idGen     IDGenerator
	metrics   *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	payments PaymentRequester,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		payments:  payments,
		idGen:     idGen,
		metrics:   metrics,
	}
}

// AddEntryInput represents input for recording a sale.
type AddEntryInput struct {
	SellerID   string
	MarketID   *string
	ClientName string
	Product    string
	Quantity   string
	Price      decimal.Decimal
	Total      decimal.Decimal
	Phone      string
	SaleDate   *time.Time
}

// AddEntry records a new sale entry with status unpaid.
func (uc *EntryUseCase) AddEntry(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	if err := domain.ValidateEntryFields(input.ClientName, input.Product, input.Quantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	saleDate := now
	if input.SaleDate != nil {
		saleDate = *input.SaleDate
	}

	total := input.Total
	if total.IsZero() {
		total = input.Price
	}

	entry := &domain.Entry{
		ID:         uc.idGen.Generate(),
		SellerID:   input.SellerID,
		MarketID:   input.MarketID,
		ClientName: input.ClientName,
		Product:    input.Product,
		Quantity:   input.Quantity,
		Price:      input.Price,
		Total:      total,
		Status:     domain.PaymentStatusUnpaid,
		Phone:      input.Phone,
		SaleDate:   saleDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	return entry, nil
}

// UpdateEntryInput represents a field-level patch on an entry. A
// Status of paid hands control to the confirmation workflow; other
// fields are applied directly.
type UpdateEntryInput struct {
	EntryID    string
	SellerID   string
	ClientName *string
	Product    *string
	Quantity   *string
	Price      *decimal.Decimal
	Phone      *string
	Status     *domain.PaymentStatus
}

// UpdateEntry applies a patch to an entry. Fails before any write
// when the entry is paid or pending.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if entry.SellerID != input.SellerID {
		return nil, domain.ErrForbidden
	}

	if err := entry.CanUpdate(); err != nil {
		return nil, err
	}

	if input.Status != nil {
		switch *input.Status {
		case domain.PaymentStatusPaid:
			result, err := uc.payments.RequestPayment(ctx, RequestPaymentInput{
				EntryID:     input.EntryID,
				RequestedBy: input.SellerID,
				Edits: &EntryEdits{
					ClientName: input.ClientName,
					Product:    input.Product,
					Quantity:   input.Quantity,
					Price:      input.Price,
					Phone:      input.Phone,
				},
			})
			if err != nil {
				return nil, err
			}
			return result.Entry, nil
		case domain.PaymentStatusUnpaid:
			// No-op transition, field edits still apply.
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entry, err = uc.entryRepo.GetByIDForUpdate(ctx, tx, input.EntryID)
	if err != nil {
		return nil, err
	}

	// Re-check under the lock. A concurrent payment request may have
	// moved the entry to pending since the first read.
	if err := entry.CanUpdate(); err != nil {
		return nil, err
	}

	applyEdits(entry, &EntryEdits{
		ClientName: input.ClientName,
		Product:    input.Product,
		Quantity:   input.Quantity,
		Price:      input.Price,
		Phone:      input.Phone,
	})
	entry.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesUpdated.Inc()
	}

	return entry, nil
}

// DeleteEntry hard-deletes an entry. Paid entries cannot be deleted.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, entryID, sellerID string) error {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}

	if entry.SellerID != sellerID {
		return domain.ErrForbidden
	}

	if err := entry.CanDelete(); err != nil {
		return err
	}

	if err := uc.entryRepo.Delete(ctx, entryID); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	return nil
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	SellerID string
	MarketID string
	Limit    int
	Offset   int
}

// ListEntries lists entries for a seller, or for a market when
// MarketID is set.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	if input.MarketID != "" {
		return uc.entryRepo.ListByMarket(ctx, input.MarketID, limit, offset)
	}

	return uc.entryRepo.ListBySeller(ctx, input.SellerID, limit, offset)
}
