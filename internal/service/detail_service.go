package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/logger"
	"oompa/backend/internal/metrics"
	"oompa/backend/internal/model"
)

// DetailService resolves single entities through the detail cache.
type DetailService interface {
	// Get returns the cached detail while fresh, otherwise fetches it and
	// overwrites the cache entry.
	Get(ctx context.Context, id int64) (model.OompaDetail, error)
	// Lookup returns the cached entry without fetching, fresh or not.
	Lookup(id int64) (cache.Entry[model.OompaDetail], bool)
	Status() cache.Status
	LastError() error
}

type detailService struct {
	client    CatalogClient
	store     *cache.DetailStore
	policy    cache.Policy
	persister StatePersister
	metrics   *metrics.Metrics
	log       logger.Sink
	group     singleflight.Group

	mu       sync.Mutex
	status   cache.Status
	lastErr  error
	inflight int

	saveMu sync.Mutex
}

func NewDetailService(client CatalogClient, store *cache.DetailStore, policy cache.Policy, persister StatePersister, m *metrics.Metrics, sink logger.Sink) DetailService {
	if store == nil {
		store = cache.NewDetailStore()
	}
	if sink == nil {
		sink = logger.Discard()
	}
	return &detailService{
		client:    client,
		store:     store,
		policy:    policy,
		persister: persister,
		metrics:   m,
		log:       sink,
		status:    cache.StatusIdle,
	}
}

func (s *detailService) Get(ctx context.Context, id int64) (model.OompaDetail, error) {
	if id <= 0 {
		return model.OompaDetail{}, fmt.Errorf("%w: id %d", ErrInvalid, id)
	}

	entry, ok := s.store.Get(id)
	if s.policy.DetailFresh(entry, ok) {
		s.metrics.ObserveCacheLookup(metrics.ResourceDetail, true)
		s.log.Log(ctx, slog.LevelInfo, "detail served from cache", "module", "service", "action", "fetch", "resource", "detail", "result", "ok", "id", id, "fetched_at", entry.FetchedAt.Format(time.RFC3339))
		return entry.Value, nil
	}
	s.metrics.ObserveCacheLookup(metrics.ResourceDetail, false)
	s.log.Log(ctx, slog.LevelInfo, "detail not cached or expired, fetching", "module", "service", "action", "fetch", "resource", "detail", "result", "ok", "id", id)

	s.begin()
	// The fetch outlives a cancelled caller so the cache is still filled
	// when the view has moved on.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		start := time.Now()
		detail, err := s.client.FetchDetail(fetchCtx, id)
		s.metrics.ObserveFetch(metrics.ResourceDetail, err, time.Since(start))
		if err != nil {
			return nil, err
		}
		detail.ID = id
		stored := s.store.Put(id, detail, s.policy.Now())
		s.persist(fetchCtx)
		return stored.Value, nil
	})
	s.end(err)

	if err != nil {
		s.log.Log(ctx, slog.LevelWarn, "detail fetch failed", "module", "service", "action", "fetch", "resource", "detail", "result", "failed", "id", id, "error", err)
		return model.OompaDetail{}, err
	}
	return v.(model.OompaDetail), nil
}

func (s *detailService) Lookup(id int64) (cache.Entry[model.OompaDetail], bool) {
	return s.store.Get(id)
}

func (s *detailService) Status() cache.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *detailService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *detailService) begin() {
	s.mu.Lock()
	s.inflight++
	s.status = cache.StatusLoading
	s.mu.Unlock()
}

func (s *detailService) end(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.status = cache.StatusFailed
		s.lastErr = err
		return
	}
	s.lastErr = nil
	if s.inflight == 0 {
		s.status = cache.StatusSucceeded
	}
}

// persist snapshots the whole store; encoding under saveMu keeps the latest
// write the most complete one.
func (s *detailService) persist(ctx context.Context) {
	if s.persister == nil {
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.persister.SaveDetails(ctx, s.store.All()); err != nil {
		s.log.Log(ctx, slog.LevelWarn, "detail snapshot save failed", "module", "service", "action", "save", "resource", "detail", "result", "failed", "error", err)
	}
}
