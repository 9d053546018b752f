package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"oompa/backend/internal/repository"
	"oompa/backend/internal/repository/testutil"
)

func exerciseSnapshotRepository(t *testing.T, repo repository.SnapshotRepository) {
	ctx := context.Background()

	value, err := repo.Get(ctx, "oompas")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, repo.Set(ctx, "oompas", []byte(`{"page":1}`)))
	value, err = repo.Get(ctx, "oompas")
	require.NoError(t, err)
	require.Equal(t, `{"page":1}`, string(value))

	require.NoError(t, repo.Set(ctx, "oompas", []byte(`{"page":2}`)))
	value, err = repo.Get(ctx, "oompas")
	require.NoError(t, err)
	require.Equal(t, `{"page":2}`, string(value))

	require.NoError(t, repo.Delete(ctx, "oompas"))
	value, err = repo.Get(ctx, "oompas")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, repo.Delete(ctx, "missing"))
}

func TestSnapshotRepository_SQLite(t *testing.T) {
	db := testutil.NewTestDB(t)
	exerciseSnapshotRepository(t, repository.NewSnapshotRepository(db))
}

func TestSnapshotRepository_SQLiteCancelledContext(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, repo.Set(ctx, "oompas", []byte("x")))
}

// Runs against a real redis when OOMPA_TEST_REDIS_ADDR is set.
func TestSnapshotRepository_Redis(t *testing.T) {
	addr := os.Getenv("OOMPA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("OOMPA_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	exerciseSnapshotRepository(t, repository.NewRedisSnapshotRepository(client))
}
