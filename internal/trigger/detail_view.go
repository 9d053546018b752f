package trigger

import (
	"context"
	"log/slog"
	"sync"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/logger"
	"oompa/backend/internal/model"
)

// DetailFetcher resolves a detail through the cache.
type DetailFetcher interface {
	Get(ctx context.Context, id int64) (model.OompaDetail, error)
}

// DetailSnapshot is what the detail view currently shows.
type DetailSnapshot struct {
	ID     int64
	Detail *model.OompaDetail
	Status cache.Status
	Err    error
}

// DetailView tracks the entity currently on display. A fetch for an entity
// that is no longer displayed still fills the cache but leaves the view alone.
type DetailView struct {
	details DetailFetcher
	log     logger.Sink

	mu      sync.Mutex
	gen     uint64
	current DetailSnapshot
}

func NewDetailView(details DetailFetcher, sink logger.Sink) *DetailView {
	if sink == nil {
		sink = logger.Discard()
	}
	return &DetailView{
		details: details,
		log:     sink,
		current: DetailSnapshot{Status: cache.StatusIdle},
	}
}

func (v *DetailView) Show(ctx context.Context, id int64) (model.OompaDetail, error) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.current = DetailSnapshot{ID: id, Status: cache.StatusLoading}
	v.mu.Unlock()

	detail, err := v.details.Get(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		v.log.Log(ctx, slog.LevelDebug, "detail view superseded", "module", "trigger", "action", "show", "resource", "detail", "result", "skipped", "id", id)
		return detail, err
	}
	if err != nil {
		v.current.Status = cache.StatusFailed
		v.current.Err = err
		return detail, err
	}
	v.current.Detail = &detail
	v.current.Status = cache.StatusSucceeded
	return detail, nil
}

// Current returns a copy of the view projection.
func (v *DetailView) Current() DetailSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	snap := v.current
	if snap.Detail != nil {
		d := *snap.Detail
		snap.Detail = &d
	}
	return snap
}
