package service_test

import (
	"net/http"
	"sync"
	"time"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/model"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testPolicy(clock *fakeClock) cache.Policy {
	return cache.NewPolicy(clock, 24*time.Hour, 24*time.Hour)
}

func oompas(ids ...int64) []model.Oompa {
	out := make([]model.Oompa, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Oompa{ID: id, FirstName: "First", LastName: "Last", Profession: "Developer"})
	}
	return out
}

func itemIDs(items []model.Oompa) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
