package pnl

import (
	v1 "github.com/quantledger/pnl-engine/internal/domain/pnl/v1"
	"github.com/shopspring/decimal"
)

// lotQueue is a FIFO inventory of open lots for one side of the book.
// Queues are ephemeral: they live for a single engine run and never escape it.
type lotQueue struct {
	lots []v1.Lot
}

func (q *lotQueue) empty() bool {
	return len(q.lots) == 0
}

// front returns a pointer to the oldest lot. Callers mutate its size in
// place and pop it once exhausted.
func (q *lotQueue) front() *v1.Lot {
	return &q.lots[0]
}

func (q *lotQueue) popFront() {
	q.lots = q.lots[1:]
}

func (q *lotQueue) pushBack(lot v1.Lot) {
	q.lots = append(q.lots, lot)
}

// buildEntries runs the FIFO matching engine over a chronologically sorted
// trade sequence and emits one entry per trade, in order.
//
// A trade first closes against the oldest opposite-side lots, oldest first;
// whatever quantity survives the opposite queue opens a new lot on the
// trade's own side. Realized profit on each matched slice is the signed
// price difference against the closed lot times the matched size. The
// trade's full notional then counts as maker or taker volume and accrues
// the corresponding fee, whether or not any matching occurred.
func buildEntries(trades []v1.Trade, makerFeeRate, takerFeeRate decimal.Decimal) []v1.Entry {
	var longLots, shortLots lotQueue
	entries := make([]v1.Entry, 0, len(trades))

	for _, trade := range trades {
		remaining := trade.Size
		realized := decimal.Zero

		closing, opening := &shortLots, &longLots
		if trade.Side == v1.SideSell {
			closing, opening = &longLots, &shortLots
		}

		for remaining.Sign() > 0 && !closing.empty() {
			front := closing.front()
			matched := remaining
			if front.Size.Cmp(remaining) < 0 {
				matched = front.Size
			}

			// Buys close shorts at (lot - trade), sells close longs
			// at (trade - lot).
			diff := front.Price.Sub(trade.Price)
			if trade.Side == v1.SideSell {
				diff = trade.Price.Sub(front.Price)
			}
			realized = realized.Add(diff.Mul(matched))

			front.Size = front.Size.Sub(matched)
			remaining = remaining.Sub(matched)
			if front.Size.Sign() <= 0 {
				closing.popFront()
			}
		}

		if remaining.Sign() > 0 {
			opening.pushBack(v1.Lot{Price: trade.Price, Size: remaining})
		}

		notional := trade.Price.Mul(trade.Size)
		entry := v1.Entry{
			Timestamp:      trade.Timestamp,
			RealizedProfit: realized,
			MakerVolume:    decimal.Zero,
			TakerVolume:    decimal.Zero,
		}
		if trade.PostOnly {
			entry.MakerVolume = notional
			entry.Fee = notional.Mul(makerFeeRate)
		} else {
			entry.TakerVolume = notional
			entry.Fee = notional.Mul(takerFeeRate)
		}

		entries = append(entries, entry)
	}

	return entries
}
