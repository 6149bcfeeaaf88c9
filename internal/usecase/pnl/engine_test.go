package pnl

import (
	"testing"
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(sec int) time.Time {
	return time.Date(2024, 8, 1, 12, 0, sec, 0, time.UTC)
}

func TestBuildEntries(t *testing.T) {
	makerRate := dec("0.001")
	takerRate := dec("0.002")

	testCases := []struct {
		name     string
		trades   []v1.Trade
		assertFn func(t *testing.T, entries []v1.Entry)
	}{
		{
			name: "buy then sell realizes price difference times size",
			trades: []v1.Trade{
				{Timestamp: at(0), Side: v1.SideBuy, Price: dec("100"), Size: dec("3")},
				{Timestamp: at(1), Side: v1.SideSell, Price: dec("110"), Size: dec("3")},
			},
			assertFn: func(t *testing.T, entries []v1.Entry) {
				require.Len(t, entries, 2)
				assert.True(t, entries[0].RealizedProfit.IsZero())
				assert.True(t, entries[1].RealizedProfit.Equal(dec("30")))
			},
		},
		{
			name: "sell closes oldest lots first",
			trades: []v1.Trade{
				{Timestamp: at(0), Side: v1.SideBuy, Price: dec("10"), Size: dec("1")},
				{Timestamp: at(1), Side: v1.SideBuy, Price: dec("20"), Size: dec("1")},
				{Timestamp: at(2), Side: v1.SideBuy, Price: dec("30"), Size: dec("1")},
				{Timestamp: at(3), Side: v1.SideSell, Price: dec("100"), Size: dec("2")},
				// closes the surviving lot opened at 30
				{Timestamp: at(4), Side: v1.SideSell, Price: dec("100"), Size: dec("1")},
			},
			assertFn: func(t *testing.T, entries []v1.Entry) {
				require.Len(t, entries, 5)
				// (100-10) + (100-20)
				assert.True(t, entries[3].RealizedProfit.Equal(dec("170")))
				// (100-30)
				assert.True(t, entries[4].RealizedProfit.Equal(dec("70")))
			},
		},
		{
			name: "sell opens a short that a later buy closes",
			trades: []v1.Trade{
				{Timestamp: at(0), Side: v1.SideSell, Price: dec("50"), Size: dec("2")},
				{Timestamp: at(1), Side: v1.SideBuy, Price: dec("40"), Size: dec("2")},
			},
			assertFn: func(t *testing.T, entries []v1.Entry) {
				require.Len(t, entries, 2)
				// short at 50 bought back at 40
				assert.True(t, entries[1].RealizedProfit.Equal(dec("20")))
			},
		},
		{
			name: "partial close splits a trade across matching and opening",
			trades: []v1.Trade{
				{Timestamp: at(0), Side: v1.SideBuy, Price: dec("100"), Size: dec("1")},
				{Timestamp: at(1), Side: v1.SideSell, Price: dec("105"), Size: dec("3")},
				{Timestamp: at(2), Side: v1.SideBuy, Price: dec("95"), Size: dec("2")},
			},
			assertFn: func(t *testing.T, entries []v1.Entry) {
				require.Len(t, entries, 3)
				// sell closes the long 1@100; the leftover 2 opens a short
				assert.True(t, entries[1].RealizedProfit.Equal(dec("5")))
				// buy closes the short 2@105 at 95
				assert.True(t, entries[2].RealizedProfit.Equal(dec("20")))
			},
		},
		{
			name: "post-only flag splits maker and taker volume",
			trades: []v1.Trade{
				{Timestamp: at(0), Side: v1.SideBuy, Price: dec("100"), Size: dec("2"), PostOnly: true},
				{Timestamp: at(1), Side: v1.SideSell, Price: dec("100"), Size: dec("2")},
			},
			assertFn: func(t *testing.T, entries []v1.Entry) {
				require.Len(t, entries, 2)
				assert.True(t, entries[0].MakerVolume.Equal(dec("200")))
				assert.True(t, entries[0].TakerVolume.IsZero())
				assert.True(t, entries[0].Fee.Equal(dec("0.2")))
				assert.True(t, entries[1].MakerVolume.IsZero())
				assert.True(t, entries[1].TakerVolume.Equal(dec("200")))
				assert.True(t, entries[1].Fee.Equal(dec("0.4")))
			},
		},
		{
			name:   "no trades yields no entries",
			trades: nil,
			assertFn: func(t *testing.T, entries []v1.Entry) {
				assert.Empty(t, entries)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries := buildEntries(tc.trades, makerRate, takerRate)
			tc.assertFn(t, entries)
		})
	}
}

func TestBuildEntriesFeeOnEveryTrade(t *testing.T) {
	// fees accrue on the full notional whether or not the trade matched
	trades := []v1.Trade{
		{Timestamp: at(0), Side: v1.SideBuy, Price: dec("100"), Size: dec("1")},
	}
	entries := buildEntries(trades, dec("0.001"), dec("0.002"))
	require.Len(t, entries, 1)
	assert.True(t, entries[0].RealizedProfit.IsZero())
	assert.True(t, entries[0].Fee.Equal(dec("0.2")))
}
