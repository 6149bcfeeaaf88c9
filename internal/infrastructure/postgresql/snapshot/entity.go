package snapshot

import (
	"time"

	"github.com/oklog/ulid/v2"
	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/shopspring/decimal"
)

// Row is one persisted interval of a PnL summary run. All intervals of a
// run share the same run id.
type Row struct {
	RunID            string          `json:"run_id"`
	ProductID        string          `json:"product_id"`
	GeneratedAt      time.Time       `json:"generated_at"`
	IntervalKey      string          `json:"interval_key"`
	IntervalLabel    string          `json:"interval_label"`
	ProfitBeforeFees decimal.Decimal `json:"profit_before_fees"`
	MakerVolume      decimal.Decimal `json:"maker_volume"`
	TakerVolume      decimal.Decimal `json:"taker_volume"`
	FeeTotal         decimal.Decimal `json:"fee_total"`
	ProfitAfterFees  decimal.Decimal `json:"profit_after_fees"`
}

// FromSummary flattens a summary into per-interval rows under a fresh
// run id.
func FromSummary(summary *v1.Summary, productID string, generatedAt time.Time) []*Row {
	runID := ulid.Make().String()

	rows := make([]*Row, 0, len(summary.Intervals))
	for _, interval := range summary.Intervals {
		rows = append(rows, &Row{
			RunID:            runID,
			ProductID:        productID,
			GeneratedAt:      generatedAt,
			IntervalKey:      interval.Key,
			IntervalLabel:    interval.Label,
			ProfitBeforeFees: interval.ProfitBeforeFees,
			MakerVolume:      interval.MakerVolume,
			TakerVolume:      interval.TakerVolume,
			FeeTotal:         interval.FeeTotal,
			ProfitAfterFees:  interval.ProfitAfterFees,
		})
	}
	return rows
}
