package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs. ULIDs sort by creation time,
// which gives the pagination query a stable insertion-order tie-break.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
