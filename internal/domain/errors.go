package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound      = errors.New("entry not found")
	ErrEntryPaid          = errors.New("paid entry cannot be modified")
	ErrEntryPendingReview = errors.New("entry is awaiting payment confirmation")
	ErrInvalidStatus      = errors.New("invalid payment status")

	// Confirmation errors
	ErrConfirmationNotFound = errors.New("payment confirmation not found")
	ErrConfirmationResolved = errors.New("payment confirmation already resolved")
	ErrConfirmationPending  = errors.New("entry already has a pending confirmation")

	// Registry errors
	ErrMarketNotFound  = errors.New("market not found")
	ErrProductNotFound = errors.New("product not found")
	ErrMissingMarketID = errors.New("market_id is required")

	// Schema errors. Raised when the payment_confirmations table is
	// missing from the backing store; callers surface a "run the
	// migration" instruction.
	ErrSchemaOutdated = errors.New("payment confirmations table missing, run the migration")
)
