package orderrecord

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/quantledger/pnl-engine/pkg/errors"
	"github.com/quantledger/pnl-engine/pkg/logger"
	"github.com/quantledger/pnl-engine/pkg/postgresql"
)

// Repository is the repository for reconciled order records.
type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// ReplaceOpen swaps the open-order set for a product with the given rows.
// Meant to run inside a transaction so readers never see a partial set.
func (r *repository) ReplaceOpen(ctx context.Context, productID string, rows []*OpenRow) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM open_orders WHERE product_id = $1`, productID); err != nil {
		return errors.TracerFromError(err)
	}

	copyCount, err := r.db.CopyFrom(ctx, pgx.Identifier{"open_orders"}, []string{
		"order_id",
		"side",
		"limit_price",
		"base_size",
		"status",
		"client_order_id",
		"end_time",
		"product_id",
		"stop_price",
	}, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{
			row.OrderID,
			row.Side,
			row.LimitPrice,
			row.BaseSize,
			row.Status,
			row.ClientOrderID,
			row.EndTime,
			row.ProductID,
			row.StopPrice,
		}, nil
	}))

	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Replaced open orders", logger.Field{
		Key:   "copyCount",
		Value: copyCount,
	})

	return nil
}

// UpsertExecuted inserts or refreshes executed order records keyed by
// order id.
func (r *repository) UpsertExecuted(ctx context.Context, rows []*ExecutedRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO executed_orders (
		order_id, submitted_at, submitted_inferred, filled_at, side, limit_price,
		base_size, status, filled_size, client_order_id, end_time, product_id,
		stop_price, post_only
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (order_id) DO UPDATE SET
		submitted_at = EXCLUDED.submitted_at,
		submitted_inferred = EXCLUDED.submitted_inferred,
		filled_at = EXCLUDED.filled_at,
		side = EXCLUDED.side,
		limit_price = EXCLUDED.limit_price,
		base_size = EXCLUDED.base_size,
		status = EXCLUDED.status,
		filled_size = EXCLUDED.filled_size,
		client_order_id = EXCLUDED.client_order_id,
		end_time = EXCLUDED.end_time,
		product_id = EXCLUDED.product_id,
		stop_price = EXCLUDED.stop_price,
		post_only = EXCLUDED.post_only`

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query,
			row.OrderID,
			row.SubmittedAt,
			row.SubmittedInferred,
			row.FilledAt,
			row.Side,
			row.LimitPrice,
			row.BaseSize,
			row.Status,
			row.FilledSize,
			row.ClientOrderID,
			row.EndTime,
			row.ProductID,
			row.StopPrice,
			row.PostOnly,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return errors.TracerFromError(err)
		}
	}

	r.logger.Info("Upserted executed orders", logger.Field{
		Key:   "count",
		Value: len(rows),
	})

	return nil
}

// ListOpen lists the open order records for a product.
func (r *repository) ListOpen(ctx context.Context, productID string) ([]*OpenRow, error) {
	query := `SELECT order_id, side, limit_price, base_size, status, client_order_id,
		end_time, product_id, stop_price
		FROM open_orders WHERE product_id = $1 ORDER BY order_id`

	dbRows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer dbRows.Close()

	rows := []*OpenRow{}
	for dbRows.Next() {
		row := &OpenRow{}
		err := dbRows.Scan(
			&row.OrderID,
			&row.Side,
			&row.LimitPrice,
			&row.BaseSize,
			&row.Status,
			&row.ClientOrderID,
			&row.EndTime,
			&row.ProductID,
			&row.StopPrice,
		)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return rows, nil
}

// GetExecutedByID gets an executed order record by order id.
func (r *repository) GetExecutedByID(ctx context.Context, orderID string) (*ExecutedRow, error) {
	query := `SELECT order_id, submitted_at, submitted_inferred, filled_at, side, limit_price,
		base_size, status, filled_size, client_order_id, end_time, product_id,
		stop_price, post_only
		FROM executed_orders WHERE order_id = $1`

	row := &ExecutedRow{}
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&row.OrderID,
		&row.SubmittedAt,
		&row.SubmittedInferred,
		&row.FilledAt,
		&row.Side,
		&row.LimitPrice,
		&row.BaseSize,
		&row.Status,
		&row.FilledSize,
		&row.ClientOrderID,
		&row.EndTime,
		&row.ProductID,
		&row.StopPrice,
		&row.PostOnly,
	)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	return row, nil
}
