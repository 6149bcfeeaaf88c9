package v1

import (
	"time"

	"github.com/quantledger/pnl-engine/pkg/numeric"
	"github.com/shopspring/decimal"
)

// OpenRecord is the canonical projection of an order still in OPEN state.
// It drops the lifecycle fields an open order does not have yet.
type OpenRecord struct {
	OrderID       string
	Side          Side
	LimitPrice    decimal.Decimal
	BaseSize      decimal.Decimal
	Status        string
	ClientOrderID string
	EndTime       *time.Time
	ProductID     string
	StopPrice     *decimal.Decimal
}

// ExecutedRecord is the canonical lifecycle record emitted for every
// classifiable order, open or not.
type ExecutedRecord struct {
	OrderID           string
	SubmittedAt       time.Time
	SubmittedInferred bool
	FilledAt          *time.Time
	Side              Side
	LimitPrice        decimal.Decimal
	BaseSize          decimal.Decimal
	Status            string
	FilledSize        *decimal.Decimal
	ClientOrderID     string
	EndTime           *time.Time
	ProductID         string
	StopPrice         *decimal.Decimal
	PostOnly          bool
}

// ReconcileResult is the output of one reconciliation call.
type ReconcileResult struct {
	OpenRecords     []OpenRecord
	ExecutedRecords []ExecutedRecord
}

// OpenRecordPayload is the JSON projection of an OpenRecord: decimals
// stringified, timestamps as millisecond UTC text, absences as null.
type OpenRecordPayload struct {
	OrderID       string  `json:"order_id"`
	Side          string  `json:"side"`
	LimitPrice    string  `json:"limit_price"`
	BaseSize      string  `json:"base_size"`
	Status        string  `json:"status"`
	ClientOrderID string  `json:"client_order_id"`
	EndTime       *string `json:"end_time"`
	ProductID     string  `json:"product_id"`
	StopPrice     *string `json:"stop_price"`
}

// ExecutedRecordPayload is the JSON projection of an ExecutedRecord.
type ExecutedRecordPayload struct {
	OrderID           string  `json:"order_id"`
	SubmittedAt       string  `json:"ts_submitted"`
	SubmittedInferred bool    `json:"ts_submitted_inferred"`
	FilledAt          *string `json:"ts_filled"`
	Side              string  `json:"side"`
	LimitPrice        string  `json:"limit_price"`
	BaseSize          string  `json:"base_size"`
	Status            string  `json:"status"`
	FilledSize        *string `json:"filled_size"`
	ClientOrderID     string  `json:"client_order_id"`
	EndTime           *string `json:"end_time"`
	ProductID         string  `json:"product_id"`
	StopPrice         *string `json:"stop_price"`
	PostOnly          bool    `json:"post_only"`
}

// ReconcileResultPayload is the JSON projection of a ReconcileResult.
type ReconcileResultPayload struct {
	OpenRecords     []OpenRecordPayload     `json:"open_records"`
	ExecutedRecords []ExecutedRecordPayload `json:"executed_records"`
}

// ToPayload converts the record to its JSON projection.
func (r OpenRecord) ToPayload() OpenRecordPayload {
	return OpenRecordPayload{
		OrderID:       r.OrderID,
		Side:          string(r.Side),
		LimitPrice:    r.LimitPrice.String(),
		BaseSize:      r.BaseSize.String(),
		Status:        r.Status,
		ClientOrderID: r.ClientOrderID,
		EndTime:       formatTimePtr(r.EndTime),
		ProductID:     r.ProductID,
		StopPrice:     formatDecimalPtr(r.StopPrice),
	}
}

// ToPayload converts the record to its JSON projection.
func (r ExecutedRecord) ToPayload() ExecutedRecordPayload {
	return ExecutedRecordPayload{
		OrderID:           r.OrderID,
		SubmittedAt:       numeric.FormatMillisUTC(r.SubmittedAt),
		SubmittedInferred: r.SubmittedInferred,
		FilledAt:          formatTimePtr(r.FilledAt),
		Side:              string(r.Side),
		LimitPrice:        r.LimitPrice.String(),
		BaseSize:          r.BaseSize.String(),
		Status:            r.Status,
		FilledSize:        formatDecimalPtr(r.FilledSize),
		ClientOrderID:     r.ClientOrderID,
		EndTime:           formatTimePtr(r.EndTime),
		ProductID:         r.ProductID,
		StopPrice:         formatDecimalPtr(r.StopPrice),
		PostOnly:          r.PostOnly,
	}
}

// ToPayload converts the result to its JSON projection.
func (r *ReconcileResult) ToPayload() *ReconcileResultPayload {
	payload := &ReconcileResultPayload{
		OpenRecords:     make([]OpenRecordPayload, 0, len(r.OpenRecords)),
		ExecutedRecords: make([]ExecutedRecordPayload, 0, len(r.ExecutedRecords)),
	}
	for _, record := range r.OpenRecords {
		payload.OpenRecords = append(payload.OpenRecords, record.ToPayload())
	}
	for _, record := range r.ExecutedRecords {
		payload.ExecutedRecords = append(payload.ExecutedRecords, record.ToPayload())
	}
	return payload
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := numeric.FormatMillisUTC(*t)
	return &formatted
}

func formatDecimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	formatted := d.String()
	return &formatted
}
