package orderrecord

import "context"

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// OrderRecordRepository is the repository for reconciled order records.
type OrderRecordRepository interface {
	ReplaceOpen(ctx context.Context, productID string, rows []*OpenRow) error
	UpsertExecuted(ctx context.Context, rows []*ExecutedRow) error
	ListOpen(ctx context.Context, productID string) ([]*OpenRow, error)
	GetExecutedByID(ctx context.Context, orderID string) (*ExecutedRow, error)
}
