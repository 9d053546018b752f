package service

import (
	"context"
	"errors"
	"fmt"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/metrics"
	"oompa/backend/internal/model"
	"oompa/backend/internal/repository"
)

// persistedKeys is the whitelist of snapshot keys written to storage.
var persistedKeys = map[string]struct{}{
	cache.ListKey:   {},
	cache.DetailKey: {},
}

// IsPersistedKey reports whether key may be written to the snapshot store.
func IsPersistedKey(key string) bool {
	_, ok := persistedKeys[key]
	return ok
}

// StatePersister saves and restores the list and detail caches.
type StatePersister interface {
	SaveList(ctx context.Context, state cache.ListState) error
	SaveDetails(ctx context.Context, entries map[int64]cache.Entry[model.OompaDetail]) error
	// LoadList returns false when nothing was persisted yet.
	LoadList(ctx context.Context) (cache.ListState, bool, error)
	LoadDetails(ctx context.Context) (map[int64]cache.Entry[model.OompaDetail], bool, error)
}

type statePersister struct {
	repo    repository.SnapshotRepository
	metrics *metrics.Metrics
}

func NewStatePersister(repo repository.SnapshotRepository, m *metrics.Metrics) StatePersister {
	return &statePersister{repo: repo, metrics: m}
}

func (p *statePersister) SaveList(ctx context.Context, state cache.ListState) error {
	data, err := cache.EncodeList(state)
	if err != nil {
		return err
	}
	return p.write(ctx, cache.ListKey, data)
}

func (p *statePersister) SaveDetails(ctx context.Context, entries map[int64]cache.Entry[model.OompaDetail]) error {
	data, err := cache.EncodeDetails(entries)
	if err != nil {
		return err
	}
	return p.write(ctx, cache.DetailKey, data)
}

func (p *statePersister) LoadList(ctx context.Context) (cache.ListState, bool, error) {
	data, err := p.repo.Get(ctx, cache.ListKey)
	if err != nil {
		return cache.ListState{}, false, fmt.Errorf("load %s: %w", cache.ListKey, err)
	}
	if data == nil {
		return cache.ListState{}, false, nil
	}
	state, err := cache.DecodeList(data)
	if err != nil {
		return cache.ListState{}, false, err
	}
	return state, true, nil
}

func (p *statePersister) LoadDetails(ctx context.Context) (map[int64]cache.Entry[model.OompaDetail], bool, error) {
	data, err := p.repo.Get(ctx, cache.DetailKey)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", cache.DetailKey, err)
	}
	if data == nil {
		return nil, false, nil
	}
	entries, err := cache.DecodeDetails(data)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (p *statePersister) write(ctx context.Context, key string, data []byte) error {
	if !IsPersistedKey(key) {
		return fmt.Errorf("%w: snapshot key %q", ErrInvalid, key)
	}
	if err := p.repo.Set(ctx, key, data); err != nil {
		p.metrics.RecordPersistFailure(key)
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Rehydrate loads persisted snapshots into the coordinator and the detail
// store. A missing or unreadable snapshot leaves the corresponding cache empty;
// the returned error is for logging only.
func Rehydrate(ctx context.Context, p StatePersister, list ListService, details *cache.DetailStore) error {
	var errs []error

	state, ok, err := p.LoadList(ctx)
	switch {
	case err != nil:
		errs = append(errs, err)
	case ok:
		list.Restore(state)
	}

	entries, ok, err := p.LoadDetails(ctx)
	switch {
	case err != nil:
		errs = append(errs, err)
	case ok:
		details.Replace(entries)
	}

	return errors.Join(errs...)
}
