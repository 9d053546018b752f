package trigger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/filter"
	"oompa/backend/internal/model"
	"oompa/backend/internal/service"
	"oompa/backend/internal/trigger"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeList struct {
	mu       sync.Mutex
	state    cache.ListState
	requests []int
	err      error
}

func newFakeList() *fakeList {
	return &fakeList{state: cache.NewListState()}
}

func (l *fakeList) RequestPage(_ context.Context, page int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, page)
	if l.err != nil {
		return l.err
	}
	l.state.Merge(page, []model.Oompa{{ID: int64(page)}}, now)
	l.state.Status = cache.StatusSucceeded
	return nil
}

func (l *fakeList) State() cache.ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

func (l *fakeList) Requests() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.requests...)
}

// manualDelay captures scheduled callbacks so tests decide when time passes.
type manualDelay struct {
	mu      sync.Mutex
	pending []*scheduled
}

type scheduled struct {
	f       func()
	stopped bool
}

func (m *manualDelay) Delay(_ time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &scheduled{f: f}
	m.pending = append(m.pending, s)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		was := !s.stopped
		s.stopped = true
		return was
	}
}

func (m *manualDelay) Elapse() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, s := range pending {
		if !s.stopped {
			s.f()
		}
	}
}

func policyAt(at time.Time) cache.Policy {
	return cache.NewPolicy(cache.ClockFunc(func() time.Time { return at }), 24*time.Hour, 24*time.Hour)
}

func TestActivate_RequestsFirstPageWhenEmpty(t *testing.T) {
	list := newFakeList()
	tr := trigger.New(list, policyAt(now), trigger.Options{})

	issued, err := tr.Activate(context.Background())
	require.NoError(t, err)
	require.True(t, issued)
	require.Equal(t, []int{1}, list.Requests())
}

func TestActivate_ServesFreshListFromCache(t *testing.T) {
	list := newFakeList()
	require.NoError(t, list.RequestPage(context.Background(), 1))
	tr := trigger.New(list, policyAt(now.Add(time.Hour)), trigger.Options{})

	issued, err := tr.Activate(context.Background())
	require.NoError(t, err)
	require.False(t, issued)
	require.Equal(t, []int{1}, list.Requests())
}

func TestActivate_RefetchesStaleList(t *testing.T) {
	list := newFakeList()
	require.NoError(t, list.RequestPage(context.Background(), 1))
	tr := trigger.New(list, policyAt(now.Add(24*time.Hour)), trigger.Options{})

	issued, err := tr.Activate(context.Background())
	require.NoError(t, err)
	require.True(t, issued)
	require.Equal(t, []int{1, 1}, list.Requests())
}

func TestActivate_InProgressIsNotAnError(t *testing.T) {
	list := newFakeList()
	list.err = service.ErrFetchInProgress
	tr := trigger.New(list, policyAt(now), trigger.Options{})

	issued, err := tr.Activate(context.Background())
	require.NoError(t, err)
	require.False(t, issued)
}

func TestSentinelVisible_RequestsNextPage(t *testing.T) {
	list := newFakeList()
	require.NoError(t, list.RequestPage(context.Background(), 1))
	tr := trigger.New(list, policyAt(now), trigger.Options{})

	issued, err := tr.SentinelVisible(context.Background())
	require.NoError(t, err)
	require.True(t, issued)
	require.Equal(t, []int{1, 2}, list.Requests())
}

func TestSentinelVisible_Guards(t *testing.T) {
	t.Run("idle list", func(t *testing.T) {
		list := newFakeList()
		tr := trigger.New(list, policyAt(now), trigger.Options{})
		issued, err := tr.SentinelVisible(context.Background())
		require.NoError(t, err)
		require.False(t, issued)
		require.Empty(t, list.Requests())
	})

	t.Run("no more pages", func(t *testing.T) {
		list := newFakeList()
		list.state.Page = 3
		list.state.HasMore = false
		list.state.Status = cache.StatusSucceeded
		tr := trigger.New(list, policyAt(now), trigger.Options{})
		issued, _ := tr.SentinelVisible(context.Background())
		require.False(t, issued)
	})

	t.Run("loading", func(t *testing.T) {
		list := newFakeList()
		list.state.Page = 1
		list.state.Status = cache.StatusLoading
		tr := trigger.New(list, policyAt(now), trigger.Options{})
		issued, _ := tr.SentinelVisible(context.Background())
		require.False(t, issued)
	})

	t.Run("failed", func(t *testing.T) {
		list := newFakeList()
		list.state.Page = 1
		list.state.Status = cache.StatusFailed
		tr := trigger.New(list, policyAt(now), trigger.Options{})
		issued, _ := tr.SentinelVisible(context.Background())
		require.False(t, issued)
	})
}

func TestSentinelVisible_ReturnsFetchError(t *testing.T) {
	list := newFakeList()
	require.NoError(t, list.RequestPage(context.Background(), 1))
	list.err = errors.New("boom")
	tr := trigger.New(list, policyAt(now), trigger.Options{})

	issued, err := tr.SentinelVisible(context.Background())
	require.True(t, issued)
	require.EqualError(t, err, "boom")
}

func TestUpdateFilters_DebouncedDisarm(t *testing.T) {
	list := newFakeList()
	require.NoError(t, list.RequestPage(context.Background(), 1))
	delay := &manualDelay{}
	tr := trigger.New(list, policyAt(now), trigger.Options{Delay: delay.Delay})

	tr.UpdateFilters(filter.Criteria{Name: "an"})
	require.True(t, tr.Armed(), "filters apply only after the debounce")
	require.Equal(t, filter.Criteria{}, tr.Filters())

	delay.Elapse()
	require.False(t, tr.Armed())
	require.Equal(t, filter.Criteria{Name: "an"}, tr.Filters())

	issued, err := tr.SentinelVisible(context.Background())
	require.NoError(t, err)
	require.False(t, issued)
	require.Equal(t, []int{1}, list.Requests())

	tr.UpdateFilters(filter.Criteria{Name: "  "})
	delay.Elapse()
	require.True(t, tr.Armed())

	issued, err = tr.SentinelVisible(context.Background())
	require.NoError(t, err)
	require.True(t, issued)
}

func TestUpdateFilters_LatestInputWins(t *testing.T) {
	delay := &manualDelay{}
	tr := trigger.New(newFakeList(), policyAt(now), trigger.Options{Delay: delay.Delay})

	tr.UpdateFilters(filter.Criteria{Name: "a"})
	tr.UpdateFilters(filter.Criteria{Name: "an"})
	tr.UpdateFilters(filter.Criteria{Profession: "dev"})
	delay.Elapse()

	require.Equal(t, filter.Criteria{Profession: "dev"}, tr.Filters())
}

func TestUpdateFilters_SameInputDoesNotRestartDebounce(t *testing.T) {
	delay := &manualDelay{}
	tr := trigger.New(newFakeList(), policyAt(now), trigger.Options{Delay: delay.Delay})

	tr.UpdateFilters(filter.Criteria{Name: "x"})
	tr.UpdateFilters(filter.Criteria{Name: "x"})

	delay.mu.Lock()
	require.Len(t, delay.pending, 1)
	delay.mu.Unlock()
}

func TestUpdateFilters_QueryAppliesImmediately(t *testing.T) {
	list := newFakeList()
	require.NoError(t, list.RequestPage(context.Background(), 1))
	delay := &manualDelay{}
	tr := trigger.New(list, policyAt(now), trigger.Options{Delay: delay.Delay})

	tr.UpdateFilters(filter.Criteria{Query: " ruiz "})
	require.False(t, tr.Armed())
	require.Equal(t, filter.Criteria{Query: "ruiz"}, tr.Filters())

	delay.mu.Lock()
	require.Empty(t, delay.pending)
	delay.mu.Unlock()

	issued, err := tr.SentinelVisible(context.Background())
	require.NoError(t, err)
	require.False(t, issued)
	require.Equal(t, []int{1}, list.Requests())

	tr.UpdateFilters(filter.Criteria{})
	require.True(t, tr.Armed())
}

func TestUpdateFilters_QueryAndNameMixed(t *testing.T) {
	delay := &manualDelay{}
	tr := trigger.New(newFakeList(), policyAt(now), trigger.Options{Delay: delay.Delay})

	tr.UpdateFilters(filter.Criteria{Name: "ana", Query: "x"})
	require.Equal(t, filter.Criteria{Query: "x"}, tr.Filters())
	require.False(t, tr.Armed())

	tr.UpdateFilters(filter.Criteria{Name: "ana"})
	require.True(t, tr.Armed(), "name is still waiting for the debounce")

	delay.Elapse()
	require.Equal(t, filter.Criteria{Name: "ana"}, tr.Filters())
	require.False(t, tr.Armed())
}

func TestUpdateFilters_RealTimer(t *testing.T) {
	tr := trigger.New(newFakeList(), policyAt(now), trigger.Options{Debounce: 10 * time.Millisecond})

	tr.UpdateFilters(filter.Criteria{Name: "bob"})
	require.Eventually(t, func() bool { return !tr.Armed() }, time.Second, 5*time.Millisecond)
}
