package reconcile

import (
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
	"github.com/quantledger/pnl-engine/pkg/numeric"
)

// timeSource is one fallible source in a precedence chain. Chains are
// evaluated left to right and short-circuit on the first source that
// yields a value, which keeps field precedence explicit and testable on
// its own.
type timeSource func() (time.Time, bool)

// firstTime resolves the first source that yields an instant.
func firstTime(sources ...timeSource) (time.Time, bool) {
	for _, source := range sources {
		if t, ok := source(); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// textTime sources an instant from raw timestamp text.
func textTime(text string) timeSource {
	return func() (time.Time, bool) {
		return numeric.ParseTimestampText(text)
	}
}

// flexTime sources an instant from a venue scalar.
func flexTime(value *v1.FlexValue) timeSource {
	return func() (time.Time, bool) {
		return value.Time()
	}
}

// knownTime sources an already resolved optional instant.
func knownTime(t *time.Time) timeSource {
	return func() (time.Time, bool) {
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
}

// earliestFillTime sources the earliest valid fill trade time.
func earliestFillTime(fills *v1.FillAggregate) timeSource {
	return func() (time.Time, bool) {
		if fills == nil || fills.EarliestTime == nil {
			return time.Time{}, false
		}
		return *fills.EarliestTime, true
	}
}

// resolveSubmittedTime resolves the order's submitted time through the full
// precedence chain: the four order-level timestamp fields, then the earliest
// fill trade time, then the completed time. Only when every source fails is
// the supplied now used, and only that fallback is marked inferred.
func resolveSubmittedTime(order v1.RawOrder, fills *v1.FillAggregate, completed *time.Time, now time.Time) (time.Time, bool) {
	resolved, ok := firstTime(
		textTime(order.SubmittedTime),
		textTime(order.CreatedTime),
		textTime(order.OrderPlacedTime),
		textTime(order.LastFillTime),
		earliestFillTime(fills),
		knownTime(completed),
	)
	if ok {
		return resolved, false
	}
	return now, true
}
