package trigger_test

import (
	"context"
	"errors"
	"testing"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/model"
	"oompa/backend/internal/trigger"

	"github.com/stretchr/testify/require"
)

type detailFunc func(ctx context.Context, id int64) (model.OompaDetail, error)

func (f detailFunc) Get(ctx context.Context, id int64) (model.OompaDetail, error) {
	return f(ctx, id)
}

func TestDetailView_Show(t *testing.T) {
	view := trigger.NewDetailView(detailFunc(func(_ context.Context, id int64) (model.OompaDetail, error) {
		return model.OompaDetail{ID: id, FirstName: "Marcy"}, nil
	}), nil)

	require.Equal(t, cache.StatusIdle, view.Current().Status)

	got, err := view.Show(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, "Marcy", got.FirstName)

	current := view.Current()
	require.Equal(t, int64(4), current.ID)
	require.Equal(t, cache.StatusSucceeded, current.Status)
	require.Equal(t, "Marcy", current.Detail.FirstName)
}

func TestDetailView_Failure(t *testing.T) {
	boom := errors.New("boom")
	view := trigger.NewDetailView(detailFunc(func(context.Context, int64) (model.OompaDetail, error) {
		return model.OompaDetail{}, boom
	}), nil)

	_, err := view.Show(context.Background(), 4)
	require.ErrorIs(t, err, boom)

	current := view.Current()
	require.Equal(t, cache.StatusFailed, current.Status)
	require.Nil(t, current.Detail)
	require.ErrorIs(t, current.Err, boom)
}

func TestDetailView_SupersededFetchLeavesViewAlone(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	view := trigger.NewDetailView(detailFunc(func(_ context.Context, id int64) (model.OompaDetail, error) {
		if id == 1 {
			close(started)
			<-release
		}
		return model.OompaDetail{ID: id}, nil
	}), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = view.Show(context.Background(), 1)
	}()
	<-started

	_, err := view.Show(context.Background(), 2)
	require.NoError(t, err)

	close(release)
	<-done

	current := view.Current()
	require.Equal(t, int64(2), current.ID)
	require.Equal(t, int64(2), current.Detail.ID)
}
