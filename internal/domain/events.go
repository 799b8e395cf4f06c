package domain

import "time"

// Event types
const (
	EventTypeEntryCreated          = "entry.created"
	EventTypeEntryUpdated          = "entry.updated"
	EventTypeEntryDeleted          = "entry.deleted"
	EventTypeConfirmationRequested = "confirmation.requested"
	EventTypeConfirmationApproved  = "confirmation.approved"
	EventTypeConfirmationRejected  = "confirmation.rejected"
	EventTypeMarketCreated         = "market.created"
	EventTypeMarketDeleted         = "market.deleted"
	EventTypeProductCreated        = "product.created"
	EventTypeProductDeleted        = "product.deleted"
)

// Aggregate types
const (
	AggregateTypeEntry        = "entry"
	AggregateTypeConfirmation = "confirmation"
	AggregateTypeMarket       = "market"
	AggregateTypeProduct      = "product"
)

// OutboxEvent represents a change event to be published. Subscribers
// treat every event as an invalidation signal and re-fetch the
// affected list; payloads carry identifiers, not full rows.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
