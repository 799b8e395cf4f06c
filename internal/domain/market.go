package domain

import "time"

// Market is a counterparty that buys from sellers and reviews
// payment confirmations.
type Market struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	AvatarURL string
	CreatedAt time.Time
}

// Product is a named reference entity sellers pick from when
// recording entries.
type Product struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
