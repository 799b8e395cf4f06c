package domain

import "time"

// ConfirmationStatus is the review state of a payment confirmation.
type ConfirmationStatus string

const (
	ConfirmationStatusPending  ConfirmationStatus = "pending"
	ConfirmationStatusApproved ConfirmationStatus = "approved"
	ConfirmationStatusRejected ConfirmationStatus = "rejected"
)

// PaymentConfirmation is a request by a seller to mark an entry paid,
// awaiting review by the market. CurrentStatus snapshots the entry's
// payment status at request time so a rejection can restore it.
type PaymentConfirmation struct {
	ID              string
	EntryID         string
	RequestedBy     string
	MarketID        string
	RequestedStatus PaymentStatus
	CurrentStatus   PaymentStatus
	Status          ConfirmationStatus
	ReviewedBy      *string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

// IsPending reports whether the confirmation is still awaiting review.
func (c *PaymentConfirmation) IsPending() bool {
	return c.Status == ConfirmationStatusPending
}

// ReviewItem pairs a pending confirmation with the entry under review
// so a market sees the client, product and amount it is approving
// without a lookup per row.
type ReviewItem struct {
	Confirmation *PaymentConfirmation
	Entry        *Entry
}
