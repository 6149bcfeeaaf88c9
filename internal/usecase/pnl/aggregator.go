package pnl

import (
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/shopspring/decimal"
)

// intervalStart computes the window start for one spec. A nil delta means
// all-time since cutoff; otherwise the window trails now by delta seconds
// but never extends before the cutoff.
func intervalStart(now time.Time, deltaSeconds *int64, cutoff time.Time) time.Time {
	if deltaSeconds == nil {
		return cutoff
	}
	delta := *deltaSeconds
	if delta < 0 {
		delta = 0
	}
	start := now.Add(-time.Duration(delta) * time.Second)
	if start.Before(cutoff) {
		return cutoff
	}
	return start
}

// summariseInterval sums the entries whose timestamp is at or after start.
// Entries are already time-ordered; the aggregation is a plain scan so the
// result is exact regardless of ordering.
func summariseInterval(entries []v1.Entry, spec v1.IntervalSpec, start time.Time) v1.IntervalMetrics {
	profitBefore := decimal.Zero
	makerVolume := decimal.Zero
	takerVolume := decimal.Zero
	feeTotal := decimal.Zero

	for _, entry := range entries {
		if entry.Timestamp.Before(start) {
			continue
		}
		profitBefore = profitBefore.Add(entry.RealizedProfit)
		makerVolume = makerVolume.Add(entry.MakerVolume)
		takerVolume = takerVolume.Add(entry.TakerVolume)
		feeTotal = feeTotal.Add(entry.Fee)
	}

	return v1.IntervalMetrics{
		Key:              spec.Key,
		Label:            spec.Label,
		ProfitBeforeFees: profitBefore,
		MakerVolume:      makerVolume,
		TakerVolume:      takerVolume,
		FeeTotal:         feeTotal,
		ProfitAfterFees:  profitBefore.Sub(feeTotal),
	}
}
