package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues ids for entries, confirmations and the rest of the
// schema. ULIDs sort lexicographically by creation time, which keeps
// secondary indexes on id append-mostly.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a fresh ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
