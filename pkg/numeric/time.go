package numeric

import (
	"strings"
	"time"

	"github.com/quantledger/pnl-engine/pkg/errors"
)

// Textual timestamp layouts accepted after RFC3339, in order. Venue exports
// sometimes drop the zone designator or swap the date separator for a space;
// both read as UTC. Fractional seconds are optional in every layout.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Epoch-second bounds for years 1 through 9999.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// FromUnixMicros converts epoch microseconds into a UTC instant. Timestamps
// outside the representable range (years 1-9999) are a structural error.
func FromUnixMicros(us int64) (time.Time, error) {
	secs := us / 1_000_000
	if secs < minEpochSeconds || secs > maxEpochSeconds {
		return time.Time{}, errors.TracerFromDetails(errors.NewErrorDetails(
			"timestamp out of range",
			string(errors.ErrTimestampOutOfRange),
			"timestamp_us",
		))
	}
	return time.UnixMicro(us).UTC(), nil
}

// ParseTimestampText parses venue timestamp text: RFC3339 first, then the
// zone-less fallback layouts. Empty or unparseable text reads as absent.
func ParseTimestampText(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return t.UTC(), true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatMillisUTC formats an instant as millisecond-precision RFC3339 text
// with an explicit Z marker, e.g. 2024-08-01T09:30:00.125Z.
func FormatMillisUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// MinTime returns the earliest of the given instants, false when empty.
func MinTime(values []time.Time) (time.Time, bool) {
	if len(values) == 0 {
		return time.Time{}, false
	}
	min := values[0]
	for _, v := range values[1:] {
		if v.Before(min) {
			min = v
		}
	}
	return min, true
}

// MaxTime returns the latest of the given instants, false when empty.
func MaxTime(values []time.Time) (time.Time, bool) {
	if len(values) == 0 {
		return time.Time{}, false
	}
	max := values[0]
	for _, v := range values[1:] {
		if v.After(max) {
			max = v
		}
	}
	return max, true
}
