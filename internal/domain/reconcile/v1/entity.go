package v1

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Side represents the direction of an order.
type Side string

const (
	// SideBuy represents a buy order.
	SideBuy Side = "BUY"
	// SideSell represents a sell order.
	SideSell Side = "SELL"
)

// ParseSideLenient parses order side text case-insensitively. Order-side
// ambiguity does not abort the order: anything unrecognized reads as Buy.
func ParseSideLenient(text string) Side {
	if strings.EqualFold(strings.TrimSpace(text), "SELL") {
		return SideSell
	}
	return SideBuy
}

// RawOrder is an order record as exported by the venue. Every field is
// optional; empty strings read as absent. Never mutated.
type RawOrder struct {
	OrderID            string              `json:"order_id"`
	Status             string              `json:"status"`
	LegacyStatus       string              `json:"order_status"`
	ClientOrderID      string              `json:"client_order_id"`
	Side               string              `json:"side"`
	CompletedTime      string              `json:"completed_time"`
	ExpireTime         string              `json:"expire_time"`
	SubmittedTime      string              `json:"submitted_time"`
	CreatedTime        string              `json:"created_time"`
	OrderPlacedTime    string              `json:"order_placed_time"`
	LastFillTime       string              `json:"last_fill_time"`
	AverageFilledPrice string              `json:"average_filled_price"`
	ProductID          string              `json:"product_id"`
	OrderConfiguration *OrderConfiguration `json:"order_configuration"`
}

// RawFill is a fill record as exported by the venue. Size and price carry
// field aliases that differ between export endpoints.
type RawFill struct {
	OrderID      string     `json:"order_id"`
	TradeTime    string     `json:"trade_time"`
	Size         *FlexValue `json:"size"`
	BaseSize     *FlexValue `json:"base_size"`
	Price        *FlexValue `json:"price"`
	UnitPrice    *FlexValue `json:"unit_price"`
	AveragePrice *FlexValue `json:"average_price"`
}

// ConfigKind identifies the order-configuration shape.
type ConfigKind int

const (
	// ConfigUnknown means the configuration matched no known variant;
	// the order is excluded from both outputs.
	ConfigUnknown ConfigKind = iota
	// ConfigLimit is a plain limit order (GTD or GTC).
	ConfigLimit
	// ConfigStopLimit is a stop-limit order (GTD or GTC).
	ConfigStopLimit
	// ConfigTriggerBracket is a bracket order with a stop trigger (GTD or GTC).
	ConfigTriggerBracket
	// ConfigMarket is a market order (IOC or GTC).
	ConfigMarket
)

// ConfigFields holds the nested field map of one configuration variant.
// Every field is optional; which ones are meaningful depends on the variant.
type ConfigFields struct {
	BaseSize         *FlexValue `json:"base_size"`
	BaseOrderSize    *FlexValue `json:"base_order_size"`
	LimitPrice       *FlexValue `json:"limit_price"`
	StopPrice        *FlexValue `json:"stop_price"`
	StopTriggerPrice *FlexValue `json:"stop_trigger_price"`
	EndTime          *FlexValue `json:"end_time"`
	PostOnly         *FlexValue `json:"post_only"`

	object bool
}

// UnmarshalJSON accepts only JSON objects; any other value reads as a
// non-match so the classifier can fall through to the next variant key.
func (c *ConfigFields) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	type alias ConfigFields
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil
	}

	*c = ConfigFields(decoded)
	c.object = true
	return nil
}

// IsObject reports whether the variant value was an actual field map.
func (c *ConfigFields) IsObject() bool {
	return c != nil && c.object
}

// OrderConfiguration is the tagged union of known configuration shapes,
// surfaced by the venue as an object with exactly one of these keys set.
// The field order matches the classifier's priority order.
type OrderConfiguration struct {
	LimitGTD          *ConfigFields `json:"limit_limit_gtd"`
	LimitGTC          *ConfigFields `json:"limit_limit_gtc"`
	StopLimitGTD      *ConfigFields `json:"stop_limit_stop_limit_gtd"`
	StopLimitGTC      *ConfigFields `json:"stop_limit_stop_limit_gtc"`
	TriggerBracketGTD *ConfigFields `json:"trigger_bracket_gtd"`
	TriggerBracketGTC *ConfigFields `json:"trigger_bracket_gtc"`
	MarketIOC         *ConfigFields `json:"market_market_ioc"`
	MarketGTC         *ConfigFields `json:"market_market_gtc"`
}

// FillData is one valid fill after resolution of its size/price aliases.
type FillData struct {
	Size      decimal.Decimal
	Price     decimal.Decimal
	TradeTime *time.Time
}

// FillAggregate holds the per-order derivations over its valid fills.
// Built once per call, read-only thereafter.
type FillAggregate struct {
	Fills []FillData

	// TotalSize is the sum of valid fill sizes, nil when the sum is not
	// positive.
	TotalSize *decimal.Decimal
	// AveragePrice is the size-weighted average over fills with positive
	// size and price, nil when no fill qualifies.
	AveragePrice *decimal.Decimal
	// EarliestTime and LatestTime bound the valid fill trade times.
	EarliestTime *time.Time
	LatestTime   *time.Time
}

// ReconcileRequest carries one full order/fill batch.
type ReconcileRequest struct {
	Orders           []RawOrder `json:"orders"`
	Fills            []RawFill  `json:"fills"`
	DefaultProductID string     `json:"product_id"`
}
