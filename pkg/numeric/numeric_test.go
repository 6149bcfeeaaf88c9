package numeric

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		name        string
		value       string
		expected    string
		expectError bool
	}{
		{
			name:     "plain decimal",
			value:    "123.45",
			expected: "123.45",
		},
		{
			name:     "negative with padding",
			value:    "  -0.001  ",
			expected: "-0.001",
		},
		{
			name:     "integer",
			value:    "42",
			expected: "42",
		},
		{
			name:        "non-numeric text",
			value:       "abc",
			expectError: true,
		},
		{
			name:        "empty",
			value:       "",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDecimal(tc.value, "price")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid decimal for price")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.String())
		})
	}
}

func TestDecimalFromText(t *testing.T) {
	d, ok := DecimalFromText(" 10.5 ")
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("10.5")))

	_, ok = DecimalFromText("not-a-number")
	assert.False(t, ok)

	_, ok = DecimalFromText("")
	assert.False(t, ok)
}

func TestFromUnixMicros(t *testing.T) {
	testCases := []struct {
		name        string
		micros      int64
		expected    time.Time
		expectError bool
	}{
		{
			name:     "epoch",
			micros:   0,
			expected: time.Unix(0, 0).UTC(),
		},
		{
			name:     "microsecond precision",
			micros:   1_700_000_000_123_456,
			expected: time.Unix(1_700_000_000, 123_456_000).UTC(),
		},
		{
			name:     "pre-epoch",
			micros:   -1_000_000,
			expected: time.Unix(-1, 0).UTC(),
		},
		{
			name:        "past year 9999",
			micros:      int64(300_000_000_000) * 1_000_000,
			expectError: true,
		},
		{
			name:        "far negative",
			micros:      -int64(300_000_000_000) * 1_000_000,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts, err := FromUnixMicros(tc.micros)
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "timestamp out of range")
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(ts))
			assert.Equal(t, time.UTC, ts.Location())
		})
	}
}

func TestParseTimestampText(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
		ok       bool
	}{
		{
			name:     "rfc3339 with zone",
			text:     "2024-08-01T09:30:00+02:00",
			expected: "2024-08-01T07:30:00.000Z",
			ok:       true,
		},
		{
			name:     "rfc3339 utc with fraction",
			text:     "2024-08-01T09:30:00.125456Z",
			expected: "2024-08-01T09:30:00.125Z",
			ok:       true,
		},
		{
			name:     "zoneless with fraction",
			text:     "2024-08-01T09:30:00.5",
			expected: "2024-08-01T09:30:00.500Z",
			ok:       true,
		},
		{
			name:     "zoneless without fraction",
			text:     "2024-08-01T09:30:00",
			expected: "2024-08-01T09:30:00.000Z",
			ok:       true,
		},
		{
			name:     "space separated",
			text:     "2024-08-01 09:30:00.25",
			expected: "2024-08-01T09:30:00.250Z",
			ok:       true,
		},
		{
			name: "empty",
			text: "",
		},
		{
			name: "whitespace only",
			text: "   ",
		},
		{
			name: "garbage",
			text: "yesterday",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := ParseTimestampText(tc.text)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, FormatMillisUTC(ts))
			}
		})
	}
}

func TestFormatMillisUTC(t *testing.T) {
	ts := time.Date(2024, 8, 1, 9, 30, 0, 125_456_000, time.UTC)
	assert.Equal(t, "2024-08-01T09:30:00.125Z", FormatMillisUTC(ts))

	// non-UTC instants are rendered in UTC
	loc := time.FixedZone("plus2", 2*3600)
	assert.Equal(t, "2024-08-01T07:30:00.000Z", FormatMillisUTC(time.Date(2024, 8, 1, 9, 30, 0, 0, loc)))
}

func TestMinMaxTime(t *testing.T) {
	t1 := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 8, 1, 11, 0, 0, 0, time.UTC)

	min, ok := MinTime([]time.Time{t2, t1, t3})
	assert.True(t, ok)
	assert.True(t, t1.Equal(min))

	max, ok := MaxTime([]time.Time{t2, t3, t1})
	assert.True(t, ok)
	assert.True(t, t3.Equal(max))

	_, ok = MinTime(nil)
	assert.False(t, ok)
	_, ok = MaxTime(nil)
	assert.False(t, ok)
}
