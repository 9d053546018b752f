package cache

import (
	"time"

	"oompa/backend/internal/model"
)

const (
	DefaultListTTL   = 24 * time.Hour
	DefaultDetailTTL = 24 * time.Hour
)

// Policy decides freshness for the list and for detail entries.
type Policy struct {
	Clock     Clock
	ListTTL   time.Duration
	DetailTTL time.Duration
}

// NewPolicy returns a policy, falling back to the system clock and the
// default TTLs for zero values.
func NewPolicy(clock Clock, listTTL, detailTTL time.Duration) Policy {
	if clock == nil {
		clock = SystemClock{}
	}
	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}
	if detailTTL <= 0 {
		detailTTL = DefaultDetailTTL
	}
	return Policy{Clock: clock, ListTTL: listTTL, DetailTTL: detailTTL}
}

func (p Policy) Now() time.Time {
	if p.Clock == nil {
		return time.Now()
	}
	return p.Clock.Now()
}

// ListFresh reports whether the last full refresh of the list is within ListTTL.
func (p Policy) ListFresh(state ListState) bool {
	return IsFresh(state.LastRefresh, p.ListTTL, p.Now())
}

// DetailFresh reports whether a detail lookup result is within DetailTTL.
// ok is the presence flag returned by DetailStore.Get.
func (p Policy) DetailFresh(entry Entry[model.OompaDetail], ok bool) bool {
	if !ok {
		return false
	}
	return entry.IsFresh(p.DetailTTL, p.Now())
}
