package trigger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/filter"
	"oompa/backend/internal/logger"
	"oompa/backend/internal/service"
)

const DefaultDebounce = 500 * time.Millisecond

// Lister is the part of the pagination coordinator the trigger drives.
type Lister interface {
	RequestPage(ctx context.Context, page int) error
	State() cache.ListState
}

// DelayFunc schedules f after d and returns a function cancelling it.
type DelayFunc func(d time.Duration, f func()) (stop func() bool)

// AfterFunc is the default DelayFunc.
func AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

type Options struct {
	Debounce time.Duration
	Delay    DelayFunc
	Logger   logger.Sink
}

// Trigger decides when list pages are requested: on activation when the
// cached list is stale, and when the end-of-list sentinel becomes visible
// while no filter is narrowing the list.
type Trigger struct {
	list     Lister
	policy   cache.Policy
	debounce time.Duration
	delay    DelayFunc
	log      logger.Sink

	mu      sync.Mutex
	applied filter.Criteria
	target  filter.Criteria // latest name/profession input awaiting the debounce
	armed   bool
	gen     uint64
	stop    func() bool
}

func New(list Lister, policy cache.Policy, opts Options) *Trigger {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Delay == nil {
		opts.Delay = AfterFunc
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Trigger{
		list:     list,
		policy:   policy,
		debounce: opts.Debounce,
		delay:    opts.Delay,
		log:      opts.Logger,
		armed:    true,
	}
}

// Activate requests page 1 unless the cached list is still fresh. It reports
// whether a request was issued.
func (t *Trigger) Activate(ctx context.Context) (bool, error) {
	state := t.list.State()
	if t.policy.ListFresh(state) {
		t.log.Log(ctx, slog.LevelInfo, "list served from cache", "module", "trigger", "action", "activate", "resource", "list", "result", "ok", "items", len(state.Items))
		return false, nil
	}

	t.log.Log(ctx, slog.LevelInfo, "requesting page 1", "module", "trigger", "action", "activate", "resource", "list", "result", "ok")
	if err := t.list.RequestPage(ctx, 1); err != nil {
		if errors.Is(err, service.ErrFetchInProgress) {
			return false, nil
		}
		return true, err
	}
	return true, nil
}

// UpdateFilters records new filter input. The free-text query applies at
// once; name and profession take effect once no further input arrives for
// the debounce interval.
func (t *Trigger) UpdateFilters(c filter.Criteria) {
	c = c.Normalize()

	t.mu.Lock()
	queryChanged := c.Query != t.applied.Query
	var wasArmed, armed bool
	if queryChanged {
		t.applied.Query = c.Query
		wasArmed, armed = t.rearmLocked()
	}

	pending := c.Name != t.target.Name || c.Profession != t.target.Profession
	var gen uint64
	if pending {
		t.target = c
		t.gen++
		gen = t.gen
		if t.stop != nil {
			t.stop()
			t.stop = nil
		}
	}
	t.mu.Unlock()

	if queryChanged {
		t.logArming(wasArmed, armed)
	}
	if !pending {
		return
	}

	stop := t.delay(t.debounce, func() { t.apply(gen, c.Name, c.Profession) })

	t.mu.Lock()
	if t.gen == gen && (t.applied.Name != c.Name || t.applied.Profession != c.Profession) {
		t.stop = stop
	}
	t.mu.Unlock()
}

func (t *Trigger) apply(gen uint64, name, profession string) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.applied.Name = name
	t.applied.Profession = profession
	t.stop = nil
	wasArmed, armed := t.rearmLocked()
	t.mu.Unlock()

	t.logArming(wasArmed, armed)
}

// rearmLocked recomputes arming from the applied filters. t.mu must be held.
func (t *Trigger) rearmLocked() (wasArmed, armed bool) {
	wasArmed = t.armed
	t.armed = !t.applied.Active()
	return wasArmed, t.armed
}

func (t *Trigger) logArming(wasArmed, armed bool) {
	ctx := context.Background()
	switch {
	case wasArmed && !armed:
		t.log.Log(ctx, slog.LevelInfo, "infinite scroll disarmed while filtering", "module", "trigger", "action", "filter", "resource", "list", "result", "ok")
	case !wasArmed && armed:
		t.log.Log(ctx, slog.LevelInfo, "infinite scroll re-armed", "module", "trigger", "action", "filter", "resource", "list", "result", "ok")
	}
}

// SentinelVisible requests the next page when scrolling is armed, the last
// request succeeded and the remote has more pages. It reports whether a
// request was issued.
func (t *Trigger) SentinelVisible(ctx context.Context) (bool, error) {
	if !t.Armed() {
		return false, nil
	}

	state := t.list.State()
	if state.Status != cache.StatusSucceeded || !state.HasMore {
		return false, nil
	}

	next := state.Page + 1
	t.log.Log(ctx, slog.LevelDebug, "sentinel visible, requesting next page", "module", "trigger", "action", "scroll", "resource", "list", "result", "ok", "page", next)
	if err := t.list.RequestPage(ctx, next); err != nil {
		if errors.Is(err, service.ErrFetchInProgress) {
			return false, nil
		}
		return true, err
	}
	return true, nil
}

// Filters returns the filters currently applied.
func (t *Trigger) Filters() filter.Criteria {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applied
}

func (t *Trigger) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}
