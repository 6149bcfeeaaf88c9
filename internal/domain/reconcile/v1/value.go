package v1

import (
	"bytes"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/quantledger/pnl-engine/pkg/numeric"
	"github.com/shopspring/decimal"
)

// FlexValue is a loosely typed venue scalar. Venue exports are inconsistent
// about whether numeric fields arrive as JSON strings, numbers or booleans;
// FlexValue accepts all three and reads objects, arrays and nulls as absent.
// Decoding never fails: a record with a junk field is a data-quality anomaly
// handled downstream, not a structural error.
type FlexValue struct {
	text  string
	valid bool
}

// NewFlexValue builds a present FlexValue, used by tests and fixtures.
func NewFlexValue(text string) *FlexValue {
	return &FlexValue{text: text, valid: true}
}

// UnmarshalJSON implements lenient scalar decoding.
func (f *FlexValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		f.text = s
		f.valid = true
	case '{', '[':
		// structured values carry no scalar reading
	case 't', 'f':
		f.text = string(trimmed)
		f.valid = true
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return nil
		}
		f.text = n.String()
		f.valid = true
	}

	return nil
}

// Text returns the scalar as text.
func (f *FlexValue) Text() (string, bool) {
	if f == nil || !f.valid {
		return "", false
	}
	return f.text, true
}

// Decimal returns the scalar parsed as an exact decimal.
func (f *FlexValue) Decimal() (decimal.Decimal, bool) {
	text, ok := f.Text()
	if !ok {
		return decimal.Zero, false
	}
	return numeric.DecimalFromText(text)
}

// Bool returns the scalar parsed as a boolean. Accepts real booleans and the
// text forms "true"/"false" (any case).
func (f *FlexValue) Bool() (bool, bool) {
	text, ok := f.Text()
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Time returns the scalar parsed as a timestamp.
func (f *FlexValue) Time() (time.Time, bool) {
	text, ok := f.Text()
	if !ok {
		return time.Time{}, false
	}
	return numeric.ParseTimestampText(text)
}
