// Package common provides shared utilities for folio-portal.
package common

import "time"

// Freshness TTLs for externally-sourced data.
//
// Quotes are fast-moving and only cached briefly at the proxy to absorb
// duplicate round-trips. Brand metadata is slow-moving and expensive: the
// upstream enforces a hard quota of roughly 100 requests per month, so brand
// records are kept for 30 days.
const (
	FreshnessQuote = 15 * time.Minute
	FreshnessBrand = 30 * 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL.
func IsFresh(updated time.Time, ttl time.Duration) bool {
	return FreshAt(updated, time.Now(), ttl)
}

// FreshAt reports whether updated is within the TTL as of now. The boundary
// is inclusive: an entry aged exactly the TTL is still fresh.
func FreshAt(updated, now time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) <= ttl
}
