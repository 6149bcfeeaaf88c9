// Package reconcile merges heterogeneous raw order records with their fills
// into canonical open and executed records. Call-level inputs are trusted;
// individual venue records are not, and incomplete ones are skipped or
// defaulted per field rather than failing the batch.
package reconcile

import (
	"context"
	"strings"
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
	"github.com/quantledger/pnl-engine/pkg/logger"
	"github.com/quantledger/pnl-engine/pkg/numeric"
	"github.com/shopspring/decimal"
)

const statusOpen = "OPEN"

// Usecase is the usecase for order reconciliation.
type Usecase struct {
	logger logger.Interface
}

// NewUsecase creates a new reconciliation usecase.
func NewUsecase(logger logger.Interface) *Usecase {
	return &Usecase{logger: logger}
}

// Process resolves canonical records for every raw order with a non-empty
// id and a classifiable configuration. Every such order yields an
// ExecutedRecord; OPEN orders additionally yield an OpenRecord.
func (u *Usecase) Process(ctx context.Context, req v1.ReconcileRequest, now time.Time) (*v1.ReconcileResult, error) {
	fillsByOrder := collectFills(req.Fills)
	result := &v1.ReconcileResult{}

	for _, order := range req.Orders {
		if order.OrderID == "" {
			continue
		}

		kind, config := classifyConfig(order.OrderConfiguration)
		if kind == v1.ConfigUnknown {
			u.logger.DebugContext(ctx, "skipping order with unclassifiable configuration", logger.Field{
				Key:   "order_id",
				Value: order.OrderID,
			})
			continue
		}

		status := order.Status
		if status == "" {
			status = order.LegacyStatus
		}
		if status == "" {
			status = "NEW"
		}
		status = strings.ToUpper(status)

		side := v1.ParseSideLenient(order.Side)
		fills := fillsByOrder[order.OrderID]

		var filledSize *decimal.Decimal
		if fills != nil {
			filledSize = fills.TotalSize
		}

		completed := resolveCompletedTime(order, fills, status)
		submitted, inferred := resolveSubmittedTime(order, fills, completed, now)
		baseSize := resolveBaseSize(config, filledSize)

		shape := resolveShape(kind, config, order, fills, completed, submitted)

		if status == statusOpen {
			result.OpenRecords = append(result.OpenRecords, v1.OpenRecord{
				OrderID:       order.OrderID,
				Side:          side,
				LimitPrice:    shape.limitPrice,
				BaseSize:      baseSize,
				Status:        status,
				ClientOrderID: order.ClientOrderID,
				EndTime:       shape.endTime,
				ProductID:     resolveProductID(order, req.DefaultProductID),
				StopPrice:     shape.stopPrice,
			})
		}

		result.ExecutedRecords = append(result.ExecutedRecords, v1.ExecutedRecord{
			OrderID:           order.OrderID,
			SubmittedAt:       submitted,
			SubmittedInferred: inferred,
			FilledAt:          completed,
			Side:              side,
			LimitPrice:        shape.limitPrice,
			BaseSize:          baseSize,
			Status:            status,
			FilledSize:        filledSize,
			ClientOrderID:     order.ClientOrderID,
			EndTime:           shape.endTime,
			ProductID:         resolveProductID(order, req.DefaultProductID),
			StopPrice:         shape.stopPrice,
			PostOnly:          kind == v1.ConfigLimit && shape.postOnly,
		})
	}

	return result, nil
}

// shapeFields holds the configuration-shape-specific resolutions.
type shapeFields struct {
	limitPrice decimal.Decimal
	stopPrice  *decimal.Decimal
	endTime    *time.Time
	postOnly   bool
}

// resolveShape resolves the price and lifetime fields that depend on the
// configuration shape.
func resolveShape(kind v1.ConfigKind, config *v1.ConfigFields, order v1.RawOrder, fills *v1.FillAggregate, completed *time.Time, submitted time.Time) shapeFields {
	expireTime := textTime(order.ExpireTime)
	configEnd := flexTime(config.EndTime)
	endOfLife := func() *time.Time {
		end, _ := firstTime(configEnd, expireTime, knownTime(&submitted))
		return &end
	}

	switch kind {
	case v1.ConfigMarket:
		limitPrice := resolveMarketPrice(order, fills)
		end, _ := firstTime(knownTime(completed), knownTime(&submitted))
		return shapeFields{limitPrice: limitPrice, endTime: &end}

	case v1.ConfigTriggerBracket:
		var stopPrice *decimal.Decimal
		if stop, ok := firstDecimal(config.StopTriggerPrice, config.StopPrice); ok {
			stopPrice = &stop
		}
		return shapeFields{
			limitPrice: decimalOrZero(config.LimitPrice),
			stopPrice:  stopPrice,
			endTime:    endOfLife(),
		}

	case v1.ConfigStopLimit:
		var stopPrice *decimal.Decimal
		if stop, ok := config.StopPrice.Decimal(); ok {
			stopPrice = &stop
		}
		return shapeFields{
			limitPrice: decimalOrZero(config.LimitPrice),
			stopPrice:  stopPrice,
			endTime:    endOfLife(),
		}

	default: // v1.ConfigLimit
		postOnly, _ := config.PostOnly.Bool()
		return shapeFields{
			limitPrice: decimalOrZero(config.LimitPrice),
			endTime:    endOfLife(),
			postOnly:   postOnly,
		}
	}
}

// resolveCompletedTime resolves the instant the order left the book: the
// order's own completed-time field for non-open orders, falling back to the
// latest fill trade time either way.
func resolveCompletedTime(order v1.RawOrder, fills *v1.FillAggregate, status string) *time.Time {
	if status != statusOpen {
		if completed, ok := numeric.ParseTimestampText(order.CompletedTime); ok {
			return &completed
		}
	}
	if fills != nil && fills.LatestTime != nil {
		return fills.LatestTime
	}
	return nil
}

// resolveBaseSize reads the configured base size, with the base-order-size
// alias; a zero or absent base size borrows the filled size when one exists.
func resolveBaseSize(config *v1.ConfigFields, filledSize *decimal.Decimal) decimal.Decimal {
	baseSize, ok := firstDecimal(config.BaseSize, config.BaseOrderSize)
	if !ok {
		baseSize = decimal.Zero
	}
	if baseSize.IsZero() && filledSize != nil {
		return *filledSize
	}
	return baseSize
}

// resolveMarketPrice prices a market order: the size-weighted fill average,
// else the venue-reported average filled price, else zero.
func resolveMarketPrice(order v1.RawOrder, fills *v1.FillAggregate) decimal.Decimal {
	if fills != nil && fills.AveragePrice != nil {
		return *fills.AveragePrice
	}
	if price, ok := numeric.DecimalFromText(order.AverageFilledPrice); ok {
		return price
	}
	return decimal.Zero
}

func resolveProductID(order v1.RawOrder, defaultProductID string) string {
	if order.ProductID != "" {
		return order.ProductID
	}
	return defaultProductID
}

func decimalOrZero(value *v1.FlexValue) decimal.Decimal {
	if d, ok := value.Decimal(); ok {
		return d
	}
	return decimal.Zero
}
