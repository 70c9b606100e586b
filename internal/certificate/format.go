package certificate

import (
	"math/big"
	"time"
)

// isoMillis matches the ISO-8601 format used by JavaScript's Date.toISOString
const isoMillis = "2006-01-02T15:04:05.000Z"

// FormatTimestamp converts a ledger timestamp (seconds since the epoch) to an ISO-8601 UTC string.
// Timestamps that do not fit in an int64 are returned as an empty string.
func FormatTimestamp(seconds *big.Int) string {
	if seconds == nil || !seconds.IsInt64() {
		return ""
	}
	return time.Unix(seconds.Int64(), 0).UTC().Format(isoMillis)
}

// BigString returns the decimal form of n, or "0" for nil.
func BigString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
