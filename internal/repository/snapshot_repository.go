package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SnapshotRepository is a key-value blob store for persisted cache snapshots.
type SnapshotRepository interface {
	// Get returns the stored blob, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a sqlite-backed snapshot repository.
func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// Set creates or replaces a snapshot.
func (r *snapshotRepository) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, now)
	return err
}

func (r *snapshotRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	return err
}
