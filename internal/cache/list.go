package cache

import (
	"time"

	"oompa/backend/internal/model"
)

// Status is the lifecycle of a fetch owner.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ListState is the accumulated paginated list.
//
// Items keep page-arrival order and hold each identity once. Page 0 means
// nothing was fetched yet. LastRefresh is only set by a page-1 merge.
type ListState struct {
	Items       []model.Oompa
	Page        int
	HasMore     bool
	LastRefresh *time.Time
	Status      Status
}

// NewListState returns the empty state used at process start.
func NewListState() ListState {
	return ListState{
		Items:   []model.Oompa{},
		HasMore: true,
		Status:  StatusIdle,
	}
}

// Merge applies a fetched page.
//
// Page 1 replaces the list with items exactly and stamps LastRefresh.
// Later pages append only identities not already present, first occurrence wins.
// HasMore turns false on an empty page and only a page-1 reset can turn it back on.
func (s *ListState) Merge(page int, items []model.Oompa, now time.Time) {
	if page == 1 {
		s.Items = append(make([]model.Oompa, 0, len(items)), items...)
		s.HasMore = len(items) > 0
		refreshed := now
		if s.LastRefresh != nil {
			refreshed = later(*s.LastRefresh, now)
		}
		s.LastRefresh = &refreshed
		s.Page = page
		return
	}

	seen := make(map[int64]struct{}, len(s.Items)+len(items))
	for _, item := range s.Items {
		seen[item.ID] = struct{}{}
	}
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		s.Items = append(s.Items, item)
	}
	s.HasMore = s.HasMore && len(items) > 0
	s.Page = page
}

// Clone returns a deep copy safe to hand to readers.
func (s ListState) Clone() ListState {
	out := s
	out.Items = append(make([]model.Oompa, 0, len(s.Items)), s.Items...)
	if s.LastRefresh != nil {
		t := *s.LastRefresh
		out.LastRefresh = &t
	}
	return out
}
