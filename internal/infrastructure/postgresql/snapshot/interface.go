package snapshot

import (
	"context"
	"time"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// SnapshotRepository is the repository for PnL summary snapshots.
type SnapshotRepository interface {
	StoreBatch(ctx context.Context, rows []*Row) error
	ListLatest(ctx context.Context, productID string) ([]*Row, error)
	DeleteOlderThan(ctx context.Context, productID string, before time.Time) (int64, error)
}
