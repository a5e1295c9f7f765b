// Package common provides shared utilities for fincatch
package common

import "time"

// Freshness TTLs for cached data
const (
	// FreshnessExchangeRate bounds how long a fetched currency pair rate is
	// reused before hitting the provider again. Historical (as-of) lookups
	// never use the cache.
	FreshnessExchangeRate = 5 * time.Minute

	// QuoteWindow is how far back a "current" price lookup searches for the
	// most recent sample.
	QuoteWindow = 1 * time.Hour

	// HistoryWindow is how far back a historical sample looks for the last
	// close/sell price at a given timestamp.
	HistoryWindow = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
