package pnl

import (
	"testing"
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestIntervalStart(t *testing.T) {
	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	cutoff := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		deltaSeconds *int64
		expected     time.Time
	}{
		{
			name:         "nil delta means cutoff",
			deltaSeconds: nil,
			expected:     cutoff,
		},
		{
			name:         "trailing window inside range",
			deltaSeconds: int64Ptr(3600),
			expected:     now.Add(-time.Hour),
		},
		{
			name:         "window longer than history clamps to cutoff",
			deltaSeconds: int64Ptr(30 * 24 * 3600),
			expected:     cutoff,
		},
		{
			name:         "negative delta clamps to now",
			deltaSeconds: int64Ptr(-60),
			expected:     now,
		},
		{
			name:         "zero delta is now",
			deltaSeconds: int64Ptr(0),
			expected:     now,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start := intervalStart(now, tc.deltaSeconds, cutoff)
			assert.True(t, tc.expected.Equal(start))
		})
	}
}

func TestSummariseInterval(t *testing.T) {
	entries := []v1.Entry{
		{Timestamp: at(0), RealizedProfit: dec("10"), MakerVolume: dec("100"), TakerVolume: dec("0"), Fee: dec("0.1")},
		{Timestamp: at(10), RealizedProfit: dec("-4"), MakerVolume: dec("0"), TakerVolume: dec("50"), Fee: dec("0.1")},
		{Timestamp: at(20), RealizedProfit: dec("6"), MakerVolume: dec("0"), TakerVolume: dec("60"), Fee: dec("0.12")},
	}
	spec := v1.IntervalSpec{Key: "24h", Label: "Last 24 hours"}

	t.Run("entries before start excluded, start itself included", func(t *testing.T) {
		m := summariseInterval(entries, spec, at(10))
		assert.Equal(t, "24h", m.Key)
		assert.Equal(t, "Last 24 hours", m.Label)
		assert.True(t, m.ProfitBeforeFees.Equal(dec("2")))
		assert.True(t, m.MakerVolume.IsZero())
		assert.True(t, m.TakerVolume.Equal(dec("110")))
		assert.True(t, m.FeeTotal.Equal(dec("0.22")))
		assert.True(t, m.ProfitAfterFees.Equal(dec("1.78")))
	})

	t.Run("window covering everything sums all entries", func(t *testing.T) {
		m := summariseInterval(entries, spec, at(0))
		assert.True(t, m.ProfitBeforeFees.Equal(dec("12")))
		assert.True(t, m.MakerVolume.Equal(dec("100")))
		assert.True(t, m.TakerVolume.Equal(dec("110")))
		assert.True(t, m.FeeTotal.Equal(dec("0.32")))
		assert.True(t, m.ProfitAfterFees.Equal(dec("11.68")))
	})

	t.Run("empty window is all zeros", func(t *testing.T) {
		m := summariseInterval(entries, spec, at(30))
		assert.True(t, m.ProfitBeforeFees.IsZero())
		assert.True(t, m.ProfitAfterFees.IsZero())
	})
}
