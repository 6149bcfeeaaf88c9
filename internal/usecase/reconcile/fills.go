package reconcile

import (
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
	"github.com/quantledger/pnl-engine/pkg/numeric"
	"github.com/shopspring/decimal"
)

// collectFills groups the raw fills by order id and derives the per-order
// aggregate. Fills without an order id, or whose size/price cannot be
// resolved to a positive decimal through any accepted alias, are dropped.
//
// Alias precedence: size falls back to base_size; price falls back to
// unit_price then average_price.
func collectFills(fills []v1.RawFill) map[string]*v1.FillAggregate {
	grouped := make(map[string]*v1.FillAggregate)

	for _, fill := range fills {
		if fill.OrderID == "" {
			continue
		}

		size, ok := firstDecimal(fill.Size, fill.BaseSize)
		if !ok {
			continue
		}
		price, ok := firstDecimal(fill.Price, fill.UnitPrice, fill.AveragePrice)
		if !ok {
			continue
		}
		if size.Sign() <= 0 || price.Sign() <= 0 {
			continue
		}

		data := v1.FillData{Size: size, Price: price}
		if tradeTime, ok := numeric.ParseTimestampText(fill.TradeTime); ok {
			data.TradeTime = &tradeTime
		}

		aggregate, exists := grouped[fill.OrderID]
		if !exists {
			aggregate = &v1.FillAggregate{}
			grouped[fill.OrderID] = aggregate
		}
		aggregate.Fills = append(aggregate.Fills, data)
	}

	for _, aggregate := range grouped {
		deriveAggregate(aggregate)
	}

	return grouped
}

// deriveAggregate computes the read-only totals over one order's fills.
func deriveAggregate(aggregate *v1.FillAggregate) {
	totalSize := decimal.Zero
	weightedSize := decimal.Zero
	weightedValue := decimal.Zero
	var times []time.Time

	for _, fill := range aggregate.Fills {
		totalSize = totalSize.Add(fill.Size)
		if fill.Size.Sign() > 0 && fill.Price.Sign() > 0 {
			weightedSize = weightedSize.Add(fill.Size)
			weightedValue = weightedValue.Add(fill.Size.Mul(fill.Price))
		}
		if fill.TradeTime != nil {
			times = append(times, *fill.TradeTime)
		}
	}

	if totalSize.Sign() > 0 {
		aggregate.TotalSize = &totalSize
	}
	if weightedSize.Sign() > 0 && weightedValue.Sign() > 0 {
		avg := weightedValue.Div(weightedSize)
		aggregate.AveragePrice = &avg
	}
	if earliest, ok := numeric.MinTime(times); ok {
		aggregate.EarliestTime = &earliest
	}
	if latest, ok := numeric.MaxTime(times); ok {
		aggregate.LatestTime = &latest
	}
}

// firstDecimal resolves the first alias carrying a parseable decimal.
func firstDecimal(values ...*v1.FlexValue) (decimal.Decimal, bool) {
	for _, value := range values {
		if d, ok := value.Decimal(); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}
