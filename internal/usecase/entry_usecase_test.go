package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/usecase"
	"github.com/bozor/daftar/internal/usecase/mocks"
)

type paymentRequesterStub struct {
	requestFunc func(ctx context.Context, input usecase.RequestPaymentInput) (*usecase.RequestPaymentResult, error)
}

func (s *paymentRequesterStub) RequestPayment(ctx context.Context, input usecase.RequestPaymentInput) (*usecase.RequestPaymentResult, error) {
	return s.requestFunc(ctx, input)
}

type entryMocks struct {
	txMgr     *mocks.MockTransactionManager
	tx        *mocks.MockTransaction
	entryRepo *mocks.MockEntryRepository
	idGen     *mocks.MockIDGenerator
	payments  *paymentRequesterStub
}

func newEntryMocks(ctrl *gomock.Controller) *entryMocks {
	m := &entryMocks{
		txMgr:     mocks.NewMockTransactionManager(ctrl),
		tx:        mocks.NewMockTransaction(ctrl),
		entryRepo: mocks.NewMockEntryRepository(ctrl),
		idGen:     mocks.NewMockIDGenerator(ctrl),
		payments: &paymentRequesterStub{
			requestFunc: func(ctx context.Context, input usecase.RequestPaymentInput) (*usecase.RequestPaymentResult, error) {
				return nil, errors.New("unexpected payment request")
			},
		},
	}

	m.txMgr.EXPECT().Begin(gomock.Any()).Return(m.tx, nil).AnyTimes()
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.idGen.EXPECT().Generate().Return("entry-id").AnyTimes()

	return m
}

func (m *entryMocks) useCase() *usecase.EntryUseCase {
	return usecase.NewEntryUseCase(m.txMgr, m.entryRepo, m.payments, m.idGen, nil)
}

func TestEntryUseCase_AddEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newEntryMocks(ctrl)

	var created *domain.Entry
	m.entryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.Entry) error {
			created = e
			return nil
		})

	entry, err := m.useCase().AddEntry(context.Background(), usecase.AddEntryInput{
		SellerID:   "seller-1",
		ClientName: "Chorsu bozori",
		Product:    "olma",
		Quantity:   "10 kg",
		Price:      decimal.NewFromInt(50000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Status != domain.PaymentStatusUnpaid {
		t.Errorf("expected new entry unpaid, got %s", entry.Status)
	}
	if !entry.Total.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected total defaulted to price, got %s", entry.Total)
	}
	if entry.SaleDate.IsZero() {
		t.Error("expected sale date defaulted to now")
	}
	if created == nil || created.ID != "entry-id" {
		t.Error("expected generated id on persisted entry")
	}
}

func TestEntryUseCase_AddEntryValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.AddEntryInput
		errorType error
	}{
		{
			name: "missing client",
			input: usecase.AddEntryInput{
				SellerID: "seller-1",
				Product:  "olma",
				Quantity: "10 kg",
			},
			errorType: domain.ErrMissingClientName,
		},
		{
			name: "missing product",
			input: usecase.AddEntryInput{
				SellerID:   "seller-1",
				ClientName: "Chorsu bozori",
				Quantity:   "10 kg",
			},
			errorType: domain.ErrMissingProduct,
		},
		{
			name: "missing quantity",
			input: usecase.AddEntryInput{
				SellerID:   "seller-1",
				ClientName: "Chorsu bozori",
				Product:    "olma",
			},
			errorType: domain.ErrMissingQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newEntryMocks(ctrl)

			_, err := m.useCase().AddEntry(context.Background(), tt.input)
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestEntryUseCase_UpdateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newEntryMocks(ctrl)

	m.entryRepo.EXPECT().GetByID(gomock.Any(), "entry-1").Return(unpaidEntry(), nil)
	m.entryRepo.EXPECT().GetByIDForUpdate(gomock.Any(), m.tx, "entry-1").Return(unpaidEntry(), nil)

	var written *domain.Entry
	m.entryRepo.EXPECT().Update(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, e *domain.Entry) error {
			written = e
			return nil
		})
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

	product := "anor"
	entry, err := m.useCase().UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		EntryID:  "entry-1",
		SellerID: "seller-1",
		Product:  &product,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Product != "anor" {
		t.Errorf("expected product edit applied, got %s", entry.Product)
	}
	if written == nil || written.Status != domain.PaymentStatusUnpaid {
		t.Error("field edits must not change the payment status")
	}
}

func TestEntryUseCase_UpdateEntryGuards(t *testing.T) {
	tests := []struct {
		name      string
		entry     func() *domain.Entry
		sellerID  string
		errorType error
	}{
		{
			name:      "reject foreign seller",
			entry:     unpaidEntry,
			sellerID:  "seller-2",
			errorType: domain.ErrForbidden,
		},
		{
			name: "reject paid entry",
			entry: func() *domain.Entry {
				e := unpaidEntry()
				e.Status = domain.PaymentStatusPaid
				return e
			},
			sellerID:  "seller-1",
			errorType: domain.ErrEntryPaid,
		},
		{
			name: "reject pending entry",
			entry: func() *domain.Entry {
				e := unpaidEntry()
				e.Status = domain.PaymentStatusPending
				return e
			},
			sellerID:  "seller-1",
			errorType: domain.ErrEntryPendingReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newEntryMocks(ctrl)

			m.entryRepo.EXPECT().GetByID(gomock.Any(), "entry-1").Return(tt.entry(), nil)

			product := "anor"
			_, err := m.useCase().UpdateEntry(context.Background(), usecase.UpdateEntryInput{
				EntryID:  "entry-1",
				SellerID: tt.sellerID,
				Product:  &product,
			})
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestEntryUseCase_UpdateEntryPaidStatusDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newEntryMocks(ctrl)

	m.entryRepo.EXPECT().GetByID(gomock.Any(), "entry-1").Return(unpaidEntry(), nil)

	var delegated *usecase.RequestPaymentInput
	pendingEntry := unpaidEntry()
	pendingEntry.Status = domain.PaymentStatusPending
	m.payments.requestFunc = func(_ context.Context, input usecase.RequestPaymentInput) (*usecase.RequestPaymentResult, error) {
		delegated = &input
		return &usecase.RequestPaymentResult{Entry: pendingEntry}, nil
	}

	paid := domain.PaymentStatusPaid
	price := decimal.NewFromInt(60000)
	entry, err := m.useCase().UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		EntryID:  "entry-1",
		SellerID: "seller-1",
		Status:   &paid,
		Price:    &price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if delegated == nil {
		t.Fatal("expected delegation to the confirmation workflow")
	}
	if delegated.RequestedBy != "seller-1" {
		t.Errorf("expected seller-1 as requester, got %s", delegated.RequestedBy)
	}
	if delegated.Edits == nil || delegated.Edits.Price == nil || !delegated.Edits.Price.Equal(price) {
		t.Error("expected field edits forwarded with the request")
	}
	if entry.Status != domain.PaymentStatusPending {
		t.Errorf("expected pending entry back, got %s", entry.Status)
	}
}

func TestEntryUseCase_UpdateEntryInvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newEntryMocks(ctrl)

	m.entryRepo.EXPECT().GetByID(gomock.Any(), "entry-1").Return(unpaidEntry(), nil)

	pending := domain.PaymentStatusPending
	_, err := m.useCase().UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		EntryID:  "entry-1",
		SellerID: "seller-1",
		Status:   &pending,
	})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestEntryUseCase_UpdateEntryConcurrentPaymentRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newEntryMocks(ctrl)

	m.entryRepo.EXPECT().GetByID(gomock.Any(), "entry-1").Return(unpaidEntry(), nil)

	lockedEntry := unpaidEntry()
	lockedEntry.Status = domain.PaymentStatusPending
	m.entryRepo.EXPECT().GetByIDForUpdate(gomock.Any(), m.tx, "entry-1").Return(lockedEntry, nil)

	product := "anor"
	_, err := m.useCase().UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		EntryID:  "entry-1",
		SellerID: "seller-1",
		Product:  &product,
	})
	if !errors.Is(err, domain.ErrEntryPendingReview) {
		t.Errorf("expected ErrEntryPendingReview after lock re-check, got %v", err)
	}
}

func TestEntryUseCase_DeleteEntry(t *testing.T) {
	tests := []struct {
		name      string
		entry     func() *domain.Entry
		sellerID  string
		setup     func(m *entryMocks)
		errorType error
	}{
		{
			name:     "deletes unpaid entry",
			entry:    unpaidEntry,
			sellerID: "seller-1",
			setup: func(m *entryMocks) {
				m.entryRepo.EXPECT().Delete(gomock.Any(), "entry-1").Return(nil)
			},
		},
		{
			name:      "reject foreign seller",
			entry:     unpaidEntry,
			sellerID:  "seller-2",
			setup:     func(m *entryMocks) {},
			errorType: domain.ErrForbidden,
		},
		{
			name: "reject paid entry",
			entry: func() *domain.Entry {
				e := unpaidEntry()
				e.Status = domain.PaymentStatusPaid
				return e
			},
			sellerID:  "seller-1",
			setup:     func(m *entryMocks) {},
			errorType: domain.ErrEntryPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newEntryMocks(ctrl)

			m.entryRepo.EXPECT().GetByID(gomock.Any(), "entry-1").Return(tt.entry(), nil)
			tt.setup(m)

			err := m.useCase().DeleteEntry(context.Background(), "entry-1", tt.sellerID)
			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEntryUseCase_ListEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newEntryMocks(ctrl)

	m.entryRepo.EXPECT().ListBySeller(gomock.Any(), "seller-1", 50, 0).
		Return([]*domain.Entry{unpaidEntry()}, nil)
	m.entryRepo.EXPECT().ListByMarket(gomock.Any(), "market-1", 20, 40).
		Return([]*domain.Entry{unpaidEntry(), unpaidEntry()}, nil)

	uc := m.useCase()

	bySeller, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{SellerID: "seller-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bySeller) != 1 {
		t.Errorf("expected 1 entry, got %d", len(bySeller))
	}

	byMarket, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{
		SellerID: "seller-1",
		MarketID: "market-1",
		Limit:    20,
		Offset:   40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byMarket) != 2 {
		t.Errorf("expected 2 entries, got %d", len(byMarket))
	}
}
