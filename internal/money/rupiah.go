// Package money formats Rupiah amounts the way the storefront displays them.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount with id-ID grouping and no fraction,
// e.g. "Rp 1.250.000".
func FormatRupiah(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
