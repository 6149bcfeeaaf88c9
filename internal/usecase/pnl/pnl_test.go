package pnl

import (
	"context"
	"testing"
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/quantledger/pnl-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUsecase(t *testing.T) *Usecase {
	log, err := logger.NewLogger()
	require.NoError(t, err)
	return NewUsecase(log)
}

func TestSummarise(t *testing.T) {
	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-48 * time.Hour)

	trades := []v1.TradeInput{
		// closed round trip two days before the window edge
		{TimestampMicros: cutoff.Add(time.Hour).UnixMicro(), Side: "BUY", Price: "100", Size: "2", PostOnly: true},
		{TimestampMicros: cutoff.Add(2 * time.Hour).UnixMicro(), Side: "SELL", Price: "110", Size: "2"},
		// recent round trip inside the one-hour window
		{TimestampMicros: now.Add(-30 * time.Minute).UnixMicro(), Side: "BUY", Price: "200", Size: "1"},
		{TimestampMicros: now.Add(-10 * time.Minute).UnixMicro(), Side: "SELL", Price: "195", Size: "1"},
	}
	intervals := []v1.IntervalSpec{
		{Key: "1h", Label: "Last hour", DeltaSeconds: int64Ptr(3600)},
		{Key: "1w", Label: "Last week", DeltaSeconds: int64Ptr(7 * 24 * 3600)},
		{Key: v1.IntervalKeyAll, Label: "All time"},
	}

	testCases := []struct {
		name        string
		req         v1.SummariseRequest
		assertFn    func(t *testing.T, summary *v1.Summary)
		expectError string
	}{
		{
			name: "intervals aggregate and the all key seeds totals",
			req: v1.SummariseRequest{
				Trades:       trades,
				Intervals:    intervals,
				NowMicros:    now.UnixMicro(),
				CutoffMicros: cutoff.UnixMicro(),
				MakerFeeRate: "0.001",
				TakerFeeRate: "0.002",
			},
			assertFn: func(t *testing.T, summary *v1.Summary) {
				require.Len(t, summary.Intervals, 3)

				hour := summary.Intervals[0]
				assert.True(t, hour.ProfitBeforeFees.Equal(dec("-5")))
				assert.True(t, hour.MakerVolume.IsZero())
				assert.True(t, hour.TakerVolume.Equal(dec("395")))
				// 200*0.002 + 195*0.002
				assert.True(t, hour.FeeTotal.Equal(dec("0.79")))
				assert.True(t, hour.ProfitAfterFees.Equal(dec("-5.79")))

				// a window wider than the history equals all-time
				week, all := summary.Intervals[1], summary.Intervals[2]
				assert.True(t, week.ProfitBeforeFees.Equal(all.ProfitBeforeFees))
				assert.True(t, week.ProfitAfterFees.Equal(all.ProfitAfterFees))

				assert.True(t, all.ProfitBeforeFees.Equal(dec("15")))
				assert.True(t, all.MakerVolume.Equal(dec("200")))
				assert.True(t, all.TakerVolume.Equal(dec("615")))
				// 200*0.001 + (220+200+195)*0.002
				assert.True(t, all.FeeTotal.Equal(dec("1.43")))

				assert.True(t, summary.TotalProfitBeforeFees.Equal(dec("15")))
				assert.True(t, summary.TotalProfitAfterFees.Equal(dec("13.57")))
			},
		},
		{
			name: "no intervals leaves totals at zero",
			req: v1.SummariseRequest{
				Trades:       trades,
				NowMicros:    now.UnixMicro(),
				CutoffMicros: cutoff.UnixMicro(),
				MakerFeeRate: "0",
				TakerFeeRate: "0",
			},
			assertFn: func(t *testing.T, summary *v1.Summary) {
				assert.Empty(t, summary.Intervals)
				assert.True(t, summary.TotalProfitBeforeFees.IsZero())
				assert.True(t, summary.TotalProfitAfterFees.IsZero())
			},
		},
		{
			name: "invalid maker fee rate fails the call",
			req: v1.SummariseRequest{
				Trades:       trades,
				NowMicros:    now.UnixMicro(),
				CutoffMicros: cutoff.UnixMicro(),
				MakerFeeRate: "oops",
				TakerFeeRate: "0.002",
			},
			expectError: "invalid decimal for maker_fee_rate",
		},
		{
			name: "invalid taker fee rate fails the call",
			req: v1.SummariseRequest{
				Trades:       trades,
				NowMicros:    now.UnixMicro(),
				CutoffMicros: cutoff.UnixMicro(),
				MakerFeeRate: "0.001",
				TakerFeeRate: "",
			},
			expectError: "invalid decimal for taker_fee_rate",
		},
		{
			name: "malformed trade fails the call",
			req: v1.SummariseRequest{
				Trades: []v1.TradeInput{
					{TimestampMicros: now.UnixMicro(), Side: "BUY", Price: "100", Size: "much"},
				},
				NowMicros:    now.UnixMicro(),
				CutoffMicros: cutoff.UnixMicro(),
				MakerFeeRate: "0.001",
				TakerFeeRate: "0.002",
			},
			expectError: "invalid decimal for size",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := newTestUsecase(t)
			summary, err := u.Summarise(context.Background(), tc.req)
			if tc.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError)
				return
			}
			require.NoError(t, err)
			tc.assertFn(t, summary)
		})
	}
}

func TestSummariseProducesStringPayload(t *testing.T) {
	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	u := newTestUsecase(t)

	summary, err := u.Summarise(context.Background(), v1.SummariseRequest{
		Trades: []v1.TradeInput{
			{TimestampMicros: now.Add(-time.Minute).UnixMicro(), Side: "BUY", Price: "100", Size: "1.5"},
		},
		Intervals:    []v1.IntervalSpec{{Key: v1.IntervalKeyAll, Label: "All time"}},
		NowMicros:    now.UnixMicro(),
		CutoffMicros: now.Add(-time.Hour).UnixMicro(),
		MakerFeeRate: "0.001",
		TakerFeeRate: "0.002",
	})
	require.NoError(t, err)

	payload := summary.ToPayload()
	require.Len(t, payload.Intervals, 1)
	assert.Equal(t, "all", payload.Intervals[0].Key)
	assert.Equal(t, "0", payload.Intervals[0].ProfitBeforeFees)
	assert.Equal(t, "150", payload.Intervals[0].TakerVolume)
	assert.Equal(t, "0.3", payload.Intervals[0].FeeTotal)
	assert.Equal(t, "-0.3", payload.TotalProfitAfterFees)
}
