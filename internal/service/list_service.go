package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/logger"
	"oompa/backend/internal/metrics"
	"oompa/backend/internal/model"
)

// ListService coordinates pagination of the catalog list.
type ListService interface {
	// RequestPage fetches page n and merges it. Only one request may be in
	// flight; overlapping calls get ErrFetchInProgress.
	RequestPage(ctx context.Context, page int) error
	MergePage(ctx context.Context, page int, items []model.Oompa)
	State() cache.ListState
	LastError() error
	Restore(state cache.ListState)
}

type listService struct {
	client    CatalogClient
	policy    cache.Policy
	persister StatePersister
	metrics   *metrics.Metrics
	log       logger.Sink

	mu      sync.Mutex
	state   cache.ListState
	lastErr error
	version uint64

	saveMu    sync.Mutex
	savedVers uint64
}

func NewListService(client CatalogClient, policy cache.Policy, persister StatePersister, m *metrics.Metrics, sink logger.Sink) ListService {
	if sink == nil {
		sink = logger.Discard()
	}
	return &listService{
		client:    client,
		policy:    policy,
		persister: persister,
		metrics:   m,
		log:       sink,
		state:     cache.NewListState(),
	}
}

func (s *listService) RequestPage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalid, page)
	}

	s.mu.Lock()
	if s.state.Status == cache.StatusLoading {
		s.mu.Unlock()
		return ErrFetchInProgress
	}
	s.state.Status = cache.StatusLoading
	s.mu.Unlock()

	s.log.Log(ctx, slog.LevelDebug, "list page requested", "module", "service", "action", "fetch", "resource", "list", "result", "ok", "page", page)

	start := time.Now()
	items, err := s.client.FetchPage(ctx, page)
	s.metrics.ObserveFetch(metrics.ResourceList, err, time.Since(start))

	if err != nil {
		s.mu.Lock()
		s.state.Status = cache.StatusFailed
		s.lastErr = err
		s.mu.Unlock()
		s.log.Log(ctx, slog.LevelWarn, "list page fetch failed", "module", "service", "action", "fetch", "resource", "list", "result", "failed", "page", page, "error", err)
		return err
	}

	s.mu.Lock()
	s.state.Merge(page, items, s.policy.Now())
	s.state.Status = cache.StatusSucceeded
	s.lastErr = nil
	s.version++
	snapshot, version := s.state.Clone(), s.version
	s.mu.Unlock()

	s.log.Log(ctx, slog.LevelInfo, "list page merged", "module", "service", "action", "fetch", "resource", "list", "result", "ok", "page", page, "received", len(items), "total", len(snapshot.Items), "has_more", snapshot.HasMore)
	s.metrics.SetListSize(len(snapshot.Items))
	s.persist(ctx, snapshot, version)
	return nil
}

func (s *listService) MergePage(ctx context.Context, page int, items []model.Oompa) {
	s.mu.Lock()
	s.state.Merge(page, items, s.policy.Now())
	s.version++
	snapshot, version := s.state.Clone(), s.version
	s.mu.Unlock()

	s.metrics.SetListSize(len(snapshot.Items))
	s.persist(ctx, snapshot, version)
}

func (s *listService) State() cache.ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *listService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Restore replaces the state with a rehydrated snapshot.
func (s *listService) Restore(state cache.ListState) {
	state = state.Clone()
	if state.Items == nil {
		state.Items = []model.Oompa{}
	}
	if state.Status == cache.StatusLoading || state.Status == "" {
		state.Status = cache.StatusIdle
	}

	s.mu.Lock()
	s.state = state
	s.lastErr = nil
	s.mu.Unlock()

	s.metrics.SetListSize(len(state.Items))
}

// persist writes the snapshot unless a newer one was already written.
func (s *listService) persist(ctx context.Context, snapshot cache.ListState, version uint64) {
	if s.persister == nil {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if version <= s.savedVers {
		return
	}
	if err := s.persister.SaveList(context.WithoutCancel(ctx), snapshot); err != nil {
		s.log.Log(ctx, slog.LevelWarn, "list snapshot save failed", "module", "service", "action", "save", "resource", "list", "result", "failed", "error", err)
		return
	}
	s.savedVers = version
}
