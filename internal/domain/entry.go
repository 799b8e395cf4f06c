package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment state of an entry.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

var validPaymentStatuses = map[PaymentStatus]bool{
	PaymentStatusUnpaid:  true,
	PaymentStatusPending: true,
	PaymentStatusPaid:    true,
}

// IsValid checks if the status is a known payment status.
func (s PaymentStatus) IsValid() bool {
	return validPaymentStatuses[s]
}

// Entry represents a recorded sale between a seller and a market.
type Entry struct {
	ID         string
	SellerID   string
	MarketID   *string
	ClientName string
	Product    string
	Quantity   string
	Price      decimal.Decimal
	Total      decimal.Decimal
	Status     PaymentStatus
	Phone      string
	SaleDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanUpdate checks whether field edits are allowed in the entry's
// current state. Paid entries are immutable; pending entries are
// frozen until the outstanding confirmation is resolved.
func (e *Entry) CanUpdate() error {
	switch e.Status {
	case PaymentStatusPaid:
		return ErrEntryPaid
	case PaymentStatusPending:
		return ErrEntryPendingReview
	}
	return nil
}

// CanDelete checks whether the entry may be deleted.
func (e *Entry) CanDelete() error {
	if e.Status == PaymentStatusPaid {
		return ErrEntryPaid
	}
	return nil
}
