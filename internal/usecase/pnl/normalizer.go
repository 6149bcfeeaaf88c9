package pnl

import (
	"sort"
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/quantledger/pnl-engine/pkg/numeric"
	"github.com/shopspring/decimal"
)

// normalizeTrades filters and parses a raw trade batch into valid trades,
// stable-sorted ascending by timestamp so ties keep their input order.
//
// Call-level validity is strict, record-level validity is not: unparseable
// price/size text, an out-of-range epoch timestamp or an unrecognized side
// fail the whole call, while non-positive price/size and trades before the
// cutoff are silently dropped. A dropped trade never reaches side parsing.
func normalizeTrades(inputs []v1.TradeInput, cutoff time.Time) ([]v1.Trade, error) {
	trades := make([]v1.Trade, 0, len(inputs))

	for _, input := range inputs {
		price, err := numeric.ParseDecimal(input.Price, "price")
		if err != nil {
			return nil, err
		}
		size, err := numeric.ParseDecimal(input.Size, "size")
		if err != nil {
			return nil, err
		}
		if size.Cmp(decimal.Zero) <= 0 || price.Cmp(decimal.Zero) <= 0 {
			continue
		}

		timestamp, err := numeric.FromUnixMicros(input.TimestampMicros)
		if err != nil {
			return nil, err
		}
		if timestamp.Before(cutoff) {
			continue
		}

		side, err := v1.ParseSide(input.Side)
		if err != nil {
			return nil, err
		}

		trades = append(trades, v1.Trade{
			Timestamp: timestamp,
			Side:      side,
			Price:     price,
			Size:      size,
			PostOnly:  input.PostOnly,
		})
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})

	return trades, nil
}
