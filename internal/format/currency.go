// Package format renders amounts for outbound messages. Formatting is
// presentation-only and never feeds back into stored values.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount as Indonesian rupiah with locale digit
// grouping, e.g. 1000000 -> "Rp1.000.000".
func Rupiah(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return printer.Sprintf("Rp%v", number.Decimal(v,
		number.MaxFractionDigits(2),
		number.MinFractionDigits(0),
	))
}
