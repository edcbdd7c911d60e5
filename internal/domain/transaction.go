package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction credits or debits the account.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// DirectionFromAmount derives the direction from the sign of the amount.
// The sign is redundant with the stored direction but upstream only
// provides a signed amount.
func DirectionFromAmount(amount decimal.Decimal) Direction {
	if amount.IsNegative() {
		return DirectionDebit
	}
	return DirectionCredit
}

// Transaction is a single persisted card transaction. Records are created
// exactly once by the ingestion pipeline and never mutated afterwards.
type Transaction struct {
	OccurredOn       time.Time
	InsertedAt       time.Time
	ID               string
	Fingerprint      string
	TelegramUserID   string
	AccountNumber    string
	Direction        Direction
	Description      string
	UpstreamCategory string
	Amount           decimal.Decimal
}
