package orderrecord

import (
	"time"

	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
	"github.com/shopspring/decimal"
)

// OpenRow is the persisted form of an open order record.
type OpenRow struct {
	OrderID       string           `json:"order_id"`
	Side          string           `json:"side"`
	LimitPrice    decimal.Decimal  `json:"limit_price"`
	BaseSize      decimal.Decimal  `json:"base_size"`
	Status        string           `json:"status"`
	ClientOrderID string           `json:"client_order_id"`
	EndTime       *time.Time       `json:"end_time"`
	ProductID     string           `json:"product_id"`
	StopPrice     *decimal.Decimal `json:"stop_price"`
}

// ExecutedRow is the persisted form of an executed order record.
type ExecutedRow struct {
	OrderID           string           `json:"order_id"`
	SubmittedAt       time.Time        `json:"submitted_at"`
	SubmittedInferred bool             `json:"submitted_inferred"`
	FilledAt          *time.Time       `json:"filled_at"`
	Side              string           `json:"side"`
	LimitPrice        decimal.Decimal  `json:"limit_price"`
	BaseSize          decimal.Decimal  `json:"base_size"`
	Status            string           `json:"status"`
	FilledSize        *decimal.Decimal `json:"filled_size"`
	ClientOrderID     string           `json:"client_order_id"`
	EndTime           *time.Time       `json:"end_time"`
	ProductID         string           `json:"product_id"`
	StopPrice         *decimal.Decimal `json:"stop_price"`
	PostOnly          bool             `json:"post_only"`
}

// FromOpenRecord converts a reconciled open record into its row form.
func FromOpenRecord(record v1.OpenRecord) *OpenRow {
	return &OpenRow{
		OrderID:       record.OrderID,
		Side:          string(record.Side),
		LimitPrice:    record.LimitPrice,
		BaseSize:      record.BaseSize,
		Status:        record.Status,
		ClientOrderID: record.ClientOrderID,
		EndTime:       record.EndTime,
		ProductID:     record.ProductID,
		StopPrice:     record.StopPrice,
	}
}

// FromExecutedRecord converts a reconciled executed record into its row form.
func FromExecutedRecord(record v1.ExecutedRecord) *ExecutedRow {
	return &ExecutedRow{
		OrderID:           record.OrderID,
		SubmittedAt:       record.SubmittedAt,
		SubmittedInferred: record.SubmittedInferred,
		FilledAt:          record.FilledAt,
		Side:              string(record.Side),
		LimitPrice:        record.LimitPrice,
		BaseSize:          record.BaseSize,
		Status:            record.Status,
		FilledSize:        record.FilledSize,
		ClientOrderID:     record.ClientOrderID,
		EndTime:           record.EndTime,
		ProductID:         record.ProductID,
		StopPrice:         record.StopPrice,
		PostOnly:          record.PostOnly,
	}
}
