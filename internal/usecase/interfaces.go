package usecase

import (
	"context"
	"time"

	"github.com/bozor/daftar/internal/domain"
)

// EntryRepository defines data access for sale entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Entry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.Entry) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*domain.Entry, error)
	ListByMarket(ctx context.Context, marketID string, limit, offset int) ([]*domain.Entry, error)
}

// ConfirmationRepository defines data access for payment confirmations.
// Implementations map a missing payment_confirmations table to
// domain.ErrSchemaOutdated so the workflow can degrade.
type ConfirmationRepository interface {
	Create(ctx context.Context, tx Transaction, confirmation *domain.PaymentConfirmation) error
	GetByID(ctx context.Context, id string) (*domain.PaymentConfirmation, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PaymentConfirmation, error)
	GetPendingByEntry(ctx context.Context, tx Transaction, entryID string) (*domain.PaymentConfirmation, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.ConfirmationStatus, reviewedBy string, reviewedAt time.Time) error
	ListPendingByMarket(ctx context.Context, marketID string, limit, offset int) ([]*domain.ReviewItem, error)
}

// MarketRepository defines data access for the market registry.
type MarketRepository interface {
	Create(ctx context.Context, market *domain.Market) error
	GetByID(ctx context.Context, id string) (*domain.Market, error)
	GetByName(ctx context.Context, name string) (*domain.Market, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Market, error)
}

// ProductRepository defines data access for the product registry.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// UserRepository defines data access for authentication accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProfileRepository defines data access for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// OutboxRepository defines data access for change events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
