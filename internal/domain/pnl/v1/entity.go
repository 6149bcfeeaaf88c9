package v1

import (
	"strings"
	"time"

	"github.com/quantledger/pnl-engine/pkg/errors"
	"github.com/shopspring/decimal"
)

// Side represents the direction of a trade.
type Side string

const (
	// SideBuy represents a buy trade.
	SideBuy Side = "BUY"
	// SideSell represents a sell trade.
	SideSell Side = "SELL"
)

// ParseSide parses side text case-insensitively. Anything other than
// BUY or SELL is a structural error.
func ParseSide(text string) (Side, error) {
	switch strings.ToUpper(text) {
	case "BUY":
		return SideBuy, nil
	case "SELL":
		return SideSell, nil
	default:
		return "", errors.TracerFromDetails(errors.NewErrorDetails(
			"unknown side: "+text,
			string(errors.ErrUnknownSide),
			"side",
		))
	}
}

// TradeInput is a raw trade record as supplied by the caller.
type TradeInput struct {
	TimestampMicros int64  `json:"timestamp_us"`
	Side            string `json:"side"`
	Price           string `json:"price"`
	Size            string `json:"size"`
	PostOnly        bool   `json:"post_only"`
}

// Trade is a validated trade, constructed once per input record that
// survives normalization.
type Trade struct {
	Timestamp time.Time
	Side      Side
	Price     decimal.Decimal
	Size      decimal.Decimal
	PostOnly  bool
}

// Lot is an unmatched quantity of a prior trade at a fixed price, queued in
// one of the matching engine's two FIFO inventories. Size decreases as the
// lot is matched and never goes negative; a lot is dequeued the moment its
// size reaches zero.
type Lot struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

// Entry is the per-trade output of the matching engine, in trade order.
// Exactly one of MakerVolume and TakerVolume is nonzero.
type Entry struct {
	Timestamp      time.Time
	RealizedProfit decimal.Decimal
	MakerVolume    decimal.Decimal
	TakerVolume    decimal.Decimal
	Fee            decimal.Decimal
}

// IntervalSpec describes one trailing aggregation window. A nil DeltaSeconds
// means all-time since cutoff.
type IntervalSpec struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	DeltaSeconds *int64 `json:"delta_seconds,omitempty"`
}

// IntervalKeyAll is the sentinel interval key whose metrics seed the
// account-wide totals.
const IntervalKeyAll = "all"

// IntervalMetrics holds the sums over one interval window.
type IntervalMetrics struct {
	Key              string
	Label            string
	ProfitBeforeFees decimal.Decimal
	MakerVolume      decimal.Decimal
	TakerVolume      decimal.Decimal
	FeeTotal         decimal.Decimal
	ProfitAfterFees  decimal.Decimal
}

// Summary is the result of one PnL summary call.
type Summary struct {
	Intervals             []IntervalMetrics
	TotalProfitBeforeFees decimal.Decimal
	TotalProfitAfterFees  decimal.Decimal
}

// SummariseRequest carries one full trade batch plus call-level parameters.
type SummariseRequest struct {
	Trades       []TradeInput   `json:"trades"`
	Intervals    []IntervalSpec `json:"intervals"`
	NowMicros    int64          `json:"now_timestamp_us"`
	CutoffMicros int64          `json:"cutoff_timestamp_us"`
	MakerFeeRate string         `json:"maker_fee_rate"`
	TakerFeeRate string         `json:"taker_fee_rate"`
}

// IntervalPayload is the JSON projection of IntervalMetrics, every decimal
// stringified.
type IntervalPayload struct {
	Key              string `json:"key"`
	Label            string `json:"label"`
	ProfitBeforeFees string `json:"profit_before_fees"`
	MakerVolume      string `json:"maker_volume"`
	TakerVolume      string `json:"taker_volume"`
	FeeTotal         string `json:"fee_total"`
	ProfitAfterFees  string `json:"profit_after_fees"`
}

// SummaryPayload is the JSON projection of a Summary.
type SummaryPayload struct {
	Intervals             []IntervalPayload `json:"intervals"`
	TotalProfitBeforeFees string            `json:"total_profit_before_fees"`
	TotalProfitAfterFees  string            `json:"total_profit_after_fees"`
}

// ToPayload converts the metrics to their JSON projection.
func (m IntervalMetrics) ToPayload() IntervalPayload {
	return IntervalPayload{
		Key:              m.Key,
		Label:            m.Label,
		ProfitBeforeFees: m.ProfitBeforeFees.String(),
		MakerVolume:      m.MakerVolume.String(),
		TakerVolume:      m.TakerVolume.String(),
		FeeTotal:         m.FeeTotal.String(),
		ProfitAfterFees:  m.ProfitAfterFees.String(),
	}
}

// ToPayload converts the summary to its JSON projection.
func (s *Summary) ToPayload() *SummaryPayload {
	payload := &SummaryPayload{
		Intervals:             make([]IntervalPayload, 0, len(s.Intervals)),
		TotalProfitBeforeFees: s.TotalProfitBeforeFees.String(),
		TotalProfitAfterFees:  s.TotalProfitAfterFees.String(),
	}
	for _, interval := range s.Intervals {
		payload.Intervals = append(payload.Intervals, interval.ToPayload())
	}
	return payload
}
