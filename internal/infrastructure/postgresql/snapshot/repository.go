package snapshot

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quantledger/pnl-engine/pkg/errors"
	"github.com/quantledger/pnl-engine/pkg/logger"
	"github.com/quantledger/pnl-engine/pkg/postgresql"
)

// Repository is the repository for PnL summary snapshots.
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

// StoreBatch stores all interval rows of one summary run.
func (r *repository) StoreBatch(ctx context.Context, rows []*Row) error {
	copyCount, err := r.db.CopyFrom(ctx, pgx.Identifier{"pnl_snapshots"}, []string{
		"run_id",
		"product_id",
		"generated_at",
		"interval_key",
		"interval_label",
		"profit_before_fees",
		"maker_volume",
		"taker_volume",
		"fee_total",
		"profit_after_fees",
	}, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{
			row.RunID,
			row.ProductID,
			row.GeneratedAt,
			row.IntervalKey,
			row.IntervalLabel,
			row.ProfitBeforeFees,
			row.MakerVolume,
			row.TakerVolume,
			row.FeeTotal,
			row.ProfitAfterFees,
		}, nil
	}))

	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Inserted snapshot rows", logger.Field{
		Key:   "copyCount",
		Value: copyCount,
	})

	return nil
}

// ListLatest lists the interval rows of the most recent run for a product.
func (r *repository) ListLatest(ctx context.Context, productID string) ([]*Row, error) {
	query := `SELECT run_id, product_id, generated_at, interval_key, interval_label,
		profit_before_fees, maker_volume, taker_volume, fee_total, profit_after_fees
		FROM pnl_snapshots
		WHERE product_id = $1
		AND run_id = (SELECT run_id FROM pnl_snapshots WHERE product_id = $1 ORDER BY generated_at DESC LIMIT 1)
		ORDER BY interval_key`

	dbRows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer dbRows.Close()

	rows := []*Row{}
	for dbRows.Next() {
		row := &Row{}
		err := dbRows.Scan(
			&row.RunID,
			&row.ProductID,
			&row.GeneratedAt,
			&row.IntervalKey,
			&row.IntervalLabel,
			&row.ProfitBeforeFees,
			&row.MakerVolume,
			&row.TakerVolume,
			&row.FeeTotal,
			&row.ProfitAfterFees,
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

// DeleteOlderThan prunes snapshot rows generated before the given instant.
func (r *repository) DeleteOlderThan(ctx context.Context, productID string, before time.Time) (int64, error) {
	query := `DELETE FROM pnl_snapshots WHERE product_id = $1 AND generated_at < $2`

	cmd, err := r.db.Exec(ctx, query, productID, before)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	return cmd.RowsAffected(), nil
}
