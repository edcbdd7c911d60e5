package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// fingerprintDelimiter separates fields before hashing. None of the
// upstream fields are expected to contain it.
const fingerprintDelimiter = "|"

// Fingerprint derives a stable content hash for a transaction. Upstream
// provides no transaction identifiers, so this hash is the sole
// deduplication key: the unique index on it makes repeated ingestion of
// the same logical transaction a no-op.
//
// The date is reduced to its calendar day and the amount to a fixed
// two-decimal string, so differing timestamp or float representations of
// the same transaction across fetch runs collapse to one fingerprint.
//
// This is the only place the formula lives. Every ingestion path must go
// through it.
func Fingerprint(telegramUserID string, occurredOn time.Time, amount decimal.Decimal, direction Direction, description string) string {
	normalized := strings.Join([]string{
		telegramUserID,
		occurredOn.Format("2006-01-02"),
		amount.StringFixed(2),
		string(direction),
		description,
	}, fingerprintDelimiter)

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
