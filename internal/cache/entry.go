package cache

import "time"

// Entry wraps a cached value with the time it was fetched.
type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
}

// IsFresh reports whether the entry is still inside its TTL window.
func (e Entry[T]) IsFresh(ttl time.Duration, now time.Time) bool {
	return IsFresh(&e.FetchedAt, ttl, now)
}

// IsFresh reports whether a value fetched at fetchedAt is younger than ttl.
// A nil or zero timestamp means nothing was fetched and is never fresh.
func IsFresh(fetchedAt *time.Time, ttl time.Duration, now time.Time) bool {
	if fetchedAt == nil || fetchedAt.IsZero() {
		return false
	}
	return now.Sub(*fetchedAt) < ttl
}

// later returns the greater of two timestamps so a re-fetch never moves
// an entry's timestamp backwards.
func later(prev, next time.Time) time.Time {
	if next.Before(prev) {
		return prev
	}
	return next
}
