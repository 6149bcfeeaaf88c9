// Package numeric provides exact-decimal and timestamp helpers shared by the
// PnL and reconciliation engines. All money math goes through
// decimal.Decimal; float64 is never used for prices, sizes or fees.
package numeric

import (
	"fmt"
	"strings"

	"github.com/quantledger/pnl-engine/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseDecimal parses a decimal-valued string into an exact decimal.
// The label names the offending parameter in the returned error.
func ParseDecimal(value string, label string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, errors.TracerFromDetails(errors.NewErrorDetails(
			fmt.Sprintf("invalid decimal for %s: %s", label, value),
			string(errors.ErrInvalidDecimal),
			label,
		))
	}
	return d, nil
}

// DecimalFromText parses loosely supplied venue text into a decimal.
// Unparseable or empty text reads as absent rather than an error.
func DecimalFromText(value string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
