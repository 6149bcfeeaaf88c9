// Package pnl computes realized profit-and-loss over a full trade batch:
// normalization, FIFO lot matching and trailing-window aggregation. Each
// call is a pure function of its request; no state survives between calls.
package pnl

import (
	"context"

	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/quantledger/pnl-engine/pkg/logger"
	"github.com/quantledger/pnl-engine/pkg/numeric"
)

// Usecase is the usecase for PnL summaries.
type Usecase struct {
	logger logger.Interface
}

// NewUsecase creates a new PnL usecase.
func NewUsecase(logger logger.Interface) *Usecase {
	return &Usecase{logger: logger}
}

// Summarise converts a trade batch into per-interval realized metrics.
// Fee rates, the reference instants and every trade's price/size must be
// valid; individual trades may still be dropped as venue noise.
func (u *Usecase) Summarise(ctx context.Context, req v1.SummariseRequest) (*v1.Summary, error) {
	makerFeeRate, err := numeric.ParseDecimal(req.MakerFeeRate, "maker_fee_rate")
	if err != nil {
		return nil, err
	}
	takerFeeRate, err := numeric.ParseDecimal(req.TakerFeeRate, "taker_fee_rate")
	if err != nil {
		return nil, err
	}
	now, err := numeric.FromUnixMicros(req.NowMicros)
	if err != nil {
		return nil, err
	}
	cutoff, err := numeric.FromUnixMicros(req.CutoffMicros)
	if err != nil {
		return nil, err
	}

	trades, err := normalizeTrades(req.Trades, cutoff)
	if err != nil {
		return nil, err
	}
	if dropped := len(req.Trades) - len(trades); dropped > 0 {
		u.logger.DebugContext(ctx, "dropped invalid or stale trades", logger.Field{
			Key:   "dropped",
			Value: dropped,
		})
	}

	entries := buildEntries(trades, makerFeeRate, takerFeeRate)

	summary := &v1.Summary{
		Intervals: make([]v1.IntervalMetrics, 0, len(req.Intervals)),
	}
	for _, spec := range req.Intervals {
		start := intervalStart(now, spec.DeltaSeconds, cutoff)
		metrics := summariseInterval(entries, spec, start)
		summary.Intervals = append(summary.Intervals, metrics)

		if spec.Key == v1.IntervalKeyAll {
			summary.TotalProfitBeforeFees = metrics.ProfitBeforeFees
			summary.TotalProfitAfterFees = metrics.ProfitAfterFees
		}
	}

	return summary, nil
}
